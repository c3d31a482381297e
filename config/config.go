package config

import (
	"archivuelo/checksum"
	"archivuelo/file_io"
	L "archivuelo/logger"
	"archivuelo/remote"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Device struct {
	Kind DeviceKind `json:"kind"`
	// where the device is mounted, e.g. /run/user/1000/gvfs/afc:host=...
	Root string `json:"root"`
	// media directory on the device, scanned recursively
	MediaPath   string `json:"media_path"`
	MaxReadSize int64  `json:"max_read_size"`
}

type Import struct {
	CopyWorkers   int      `json:"copy_workers"`
	VerifyWorkers int      `json:"verify_workers"`
	QueueSize     int      `json:"queue_size"`
	HashType      HashType `json:"hash_type"`
}

type Config struct {
	// empty means the default location in the config directory
	DBPath string `json:"db_path"`
	Device Device `json:"device"`
	Import Import `json:"import"`
}

var config = defaultConfig()
var configPath string

func defaultConfig() Config {
	return Config{
		DBPath: "",
		Device: Device{
			Kind:        DEVICE_LOCAL,
			Root:        "",
			MediaPath:   "/DCIM",
			MaxReadSize: remote.DefaultMaxReadSize,
		},
		Import: Import{
			CopyWorkers:   4,
			VerifyWorkers: 2,
			QueueSize:     64,
			HashType:      HashType(checksum.DefaultHashType),
		},
	}
}

// Parse reads the config at configPathArg. Keys missing from the file keep
// their default values.
func Parse(configPathArg string) error {
	file, err := os.Open(configPathArg)
	if err != nil {
		return fmt.Errorf("config: could not open config file %s for reading: %w", configPathArg, err)
	}
	defer file.Close()
	parsed := defaultConfig()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	err = decoder.Decode(&parsed)
	if err != nil {
		return fmt.Errorf("config: malformed config %s: %w", configPathArg, err)
	}
	err = validate(&parsed)
	if err != nil {
		return fmt.Errorf("config: could not validate config: %w", err)
	}
	config = parsed

	configPath, err = filepath.Abs(configPathArg)
	if err != nil {
		return err
	}
	return nil
}

func Get() *Config {
	return &config
}

func GetDefaultConfigDir() (string, error) {
	configDir, configDirError := os.UserConfigDir()
	homeDir, homeDirError := os.UserHomeDir()
	if configDirError != nil && homeDirError != nil {
		return "", fmt.Errorf("config: cannot find config dir: Config: %w, Home: %w", configDirError, homeDirError)
	}
	var dir string
	if configDirError == nil {
		dir = configDir
	} else {
		dir = homeDir
	}
	dir, err := filepath.Abs(filepath.Join(dir, "archivuelo"))
	if err != nil {
		return "", err
	}
	L.Debugf("Using config directory: %s", dir)
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}
	return dir, nil
}

// GetDefaultConfigPath returns the default config location, writing the
// default config there on first use.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetDefaultConfigDir()
	if err != nil {
		return "", err
	}
	configFilePath := filepath.Join(configDir, "config.json")
	exists, err := file_io.Exists(configFilePath)
	if err != nil {
		return "", err
	}
	if !exists {
		_, err = file_io.WriteToFile(configFilePath, []byte(DumpDefaultConfig()), file_io.WRITE_OVERWRITE)
		if err != nil {
			return "", err
		}
		L.Infof("Created default config at %s", configFilePath)
	}
	return configFilePath, nil
}

// Load parses the config at configPathArg, or the default config when it
// is empty. A leading ~/ is expanded to the home directory.
func Load(configPathArg string) (*Config, error) {
	if configPathArg == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPathArg = defaultPath
	}
	expanded, err := ExpandHome(configPathArg)
	if err != nil {
		return nil, err
	}
	if err := Parse(expanded); err != nil {
		return nil, err
	}
	L.Debugf("Loaded config from %s", configPath)
	return Get(), nil
}

func ExpandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~ for %s: %w", p, err)
	}
	return filepath.Join(homeDir, p[2:]), nil
}

func GetConfigPath() string {
	return configPath
}

func (c *Config) ToJson() (string, error) {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func DumpDefaultConfig() string {
	defaultConfig := defaultConfig()
	configStr, err := defaultConfig.ToJson()
	if err != nil {
		return ""
	}
	return configStr
}

func validate(c *Config) error {
	if _, err := ParseDeviceKind(string(c.Device.Kind)); err != nil {
		return err
	}
	if c.Device.MediaPath == "" {
		return fmt.Errorf("device.media_path must not be empty")
	}
	if c.Device.MaxReadSize <= 0 {
		return fmt.Errorf("device.max_read_size must be positive, got %d", c.Device.MaxReadSize)
	}
	if c.Import.CopyWorkers <= 0 || c.Import.VerifyWorkers <= 0 {
		return fmt.Errorf("import.copy_workers and import.verify_workers must be positive")
	}
	if c.Import.QueueSize <= 0 {
		return fmt.Errorf("import.queue_size must be positive, got %d", c.Import.QueueSize)
	}
	// NOTE: hash_type and device.kind are checked while decoding
	return nil
}
