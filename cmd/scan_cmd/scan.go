package scan_cmd

import (
	"archivuelo/cmd/cmd_env"
	L "archivuelo/logger"
	"archivuelo/scanner"
	"context"
	"flag"
	"fmt"
)

type ScanCmdEnv struct {
	Flags             *cmd_env.CommonFlags
	ClearDB           bool
	ResetImportStatus bool
	AssumeYes         bool
}

func Execute(ctx context.Context, args []string) error {
	scanCmdEnv, err := parseFlags(args)
	if err != nil {
		return err
	}
	needsDevice := !scanCmdEnv.ClearDB && !scanCmdEnv.ResetImportStatus
	env, err := cmd_env.Open(ctx, scanCmdEnv.Flags, needsDevice)
	if err != nil {
		return err
	}
	defer env.Close(ctx)

	// both administrative actions quit without scanning
	if scanCmdEnv.ClearDB {
		L.Println("Clear the database of scanned media files.")
		L.Println("(This does not affect any media files, neither on a device nor on disk.)")
		ok, err := cmd_env.Confirm("Proceed to clear the database?", scanCmdEnv.AssumeYes)
		if err != nil {
			return err
		}
		if !ok {
			return cmd_env.ErrAborted
		}
		if err := env.Repo.DropAll(ctx); err != nil {
			return err
		}
		L.Info("Clearing database: Done.")
		return nil
	}

	if scanCmdEnv.ResetImportStatus {
		ok, err := cmd_env.Confirm("Mark every tracked file as not imported?", scanCmdEnv.AssumeYes)
		if err != nil {
			return err
		}
		if !ok {
			return cmd_env.ErrAborted
		}
		n, err := env.Repo.ResetAllImportedFlags(ctx)
		if err != nil {
			return err
		}
		L.Infof("Reset import status of %d files", n)
		return nil
	}

	sc := scanner.New(env.Device, env.Repo, env.Config.Device.MediaPath)
	L.Infof("Scanning %s on %s", sc.Root(), env.Device.Describe())
	stats, err := sc.Scan(ctx, nil)
	if err != nil {
		return fmt.Errorf("scan aborted after %d files: %w", stats.Scanned, err)
	}
	L.Infof("%s", stats)
	return nil
}

func parseFlags(args []string) (*ScanCmdEnv, error) {
	scanCmd := flag.NewFlagSet("scan", flag.ExitOnError)
	flags := cmd_env.RegisterCommonFlags(scanCmd)
	clearDB := scanCmd.Bool("clear-db", false, "Clear the database and quit")
	resetImportStatus := scanCmd.Bool("reset-import-status", false, "Mark all tracked files as not imported and quit")
	assumeYes := scanCmd.Bool("assume-yes", false, "Assume yes to all yes/no prompts")
	scanCmd.BoolVar(assumeYes, "y", false, "alias to -assume-yes")
	scanCmd.Usage = func() {
		PrintUsage()
	}
	err := scanCmd.Parse(args)
	if err != nil {
		return nil, err
	}
	if scanCmd.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v. For more information, check 'archivuelo help scan'", scanCmd.Args())
	}
	if err := flags.Apply(); err != nil {
		return nil, err
	}
	return &ScanCmdEnv{
		Flags:             flags,
		ClearDB:           *clearDB,
		ResetImportStatus: *resetImportStatus,
		AssumeYes:         *assumeYes,
	}, nil
}
