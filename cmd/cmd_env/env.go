// Package cmd_env holds what every subcommand sets up before doing work:
// common flags, the config, the record store and the device.
package cmd_env

import (
	"archivuelo/config"
	"archivuelo/database"
	"archivuelo/database/repository"
	L "archivuelo/logger"
	"archivuelo/remote"
	"archivuelo/remote/localfs"
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrAborted = errors.New("aborted, no changes made")

type CommonFlags struct {
	ConfigPath *string
	DeviceRoot *string
	LogLevel   *string
	ColorMode  *string
}

// RegisterCommonFlags adds -c/--config, -d/--device, -L/--log-level and
// --color to fs.
func RegisterCommonFlags(fs *flag.FlagSet) *CommonFlags {
	f := &CommonFlags{}
	f.ConfigPath = fs.String("config", "", "Path to config.json file")
	fs.StringVar(f.ConfigPath, "c", "", "alias to -config")
	f.DeviceRoot = fs.String("device", "", "Directory where the device is mounted")
	fs.StringVar(f.DeviceRoot, "d", "", "alias to -device")
	f.LogLevel = fs.String("log-level", L.GetLogLevel().String(), "Set log level: debug info warn error silent")
	fs.StringVar(f.LogLevel, "L", L.GetLogLevel().String(), "alias to -log-level")
	f.ColorMode = fs.String("color", L.GetColorMode().String(), "Set color mode: auto always never")
	return f
}

// Apply configures the logger from the parsed flags.
func (f *CommonFlags) Apply() error {
	if f.LogLevel != nil && *f.LogLevel != "" {
		if err := L.SetLevelFromString(*f.LogLevel); err != nil {
			return err
		}
		L.Debugf("log level set to: %s", strings.ToUpper(*f.LogLevel))
	}
	if f.ColorMode != nil && *f.ColorMode != "" {
		if err := L.SetColorModeFromString(*f.ColorMode); err != nil {
			return err
		}
	}
	return nil
}

type Env struct {
	Config *config.Config
	DB     *database.DB
	Repo   repository.MediaFileRepository
	Device remote.FileService
}

// Open loads the config and the record store. The device is connected only
// when withDevice is set, commands that read the store alone work without
// one.
func Open(ctx context.Context, flags *CommonFlags, withDevice bool) (*Env, error) {
	cfg, err := config.Load(*flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	env := &Env{Config: cfg}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = database.GetDBFilePath(ctx)
		if err != nil {
			return nil, err
		}
	} else if dbPath, err = config.ExpandHome(dbPath); err != nil {
		return nil, err
	}
	db, err := database.NewDB(dbPath)
	if err != nil {
		return nil, err
	}
	L.Debugf("Found database at: %s", dbPath)
	if err := db.Init(ctx); err != nil {
		db.Close(ctx)
		return nil, err
	}
	env.DB = db
	env.Repo = repository.NewMediaFileRepository(db)

	if withDevice {
		env.Device, err = OpenDevice(cfg, *flags.DeviceRoot)
		if err != nil {
			db.Close(ctx)
			return nil, err
		}
	}
	return env, nil
}

// OpenDevice connects to the device described by cfg. A non empty
// rootOverride replaces the configured mount point.
func OpenDevice(cfg *config.Config, rootOverride string) (remote.FileService, error) {
	root := cfg.Device.Root
	if rootOverride != "" {
		root = rootOverride
	}
	if root == "" {
		return nil, fmt.Errorf("%w: no device configured, pass --device or set device.root in the config", remote.ErrConnectionLost)
	}
	root, err := config.ExpandHome(root)
	if err != nil {
		return nil, err
	}
	switch cfg.Device.Kind {
	case config.DEVICE_LOCAL:
		svc, err := localfs.New(root, cfg.Device.MaxReadSize)
		if err != nil {
			return nil, fmt.Errorf("could not connect to device: %w", err)
		}
		L.Infof("Connected to %s", svc.Describe())
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported device kind: %s", cfg.Device.Kind)
	}
}

func (e *Env) Close(ctx context.Context) {
	if e.Device != nil {
		e.Device.Close()
	}
	if e.DB != nil {
		e.DB.Close(ctx)
	}
}

// Confirm asks a yes/no question on stdin, defaulting to no.
func Confirm(prompt string, assumeYes bool) (bool, error) {
	return confirm(os.Stdin, prompt, assumeYes)
}

func confirm(in io.Reader, prompt string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	L.Printf("%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
