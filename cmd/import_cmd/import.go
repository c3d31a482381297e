package import_cmd

import (
	"archivuelo/cmd/cmd_env"
	"archivuelo/config"
	"archivuelo/filter"
	"archivuelo/importer"
	L "archivuelo/logger"
	"archivuelo/scanner"
	"context"
	"flag"
	"fmt"
	"path/filepath"
)

type ImportCmdEnv struct {
	Flags         *cmd_env.CommonFlags
	Options       importer.Options
	copyWorkers   int
	verifyWorkers int
}

func Execute(ctx context.Context, args []string) error {
	importCmdEnv, err := parseFlags(args)
	if err != nil {
		return err
	}

	// the cache needs no device unless files are actually copied
	needsDevice := !(importCmdEnv.Options.UseCache && importCmdEnv.Options.DryRun)
	env, err := cmd_env.Open(ctx, importCmdEnv.Flags, needsDevice)
	if err != nil {
		return err
	}
	defer env.Close(ctx)

	opts := importCmdEnv.Options
	opts.CopyWorkers = pick(importCmdEnv.copyWorkers, env.Config.Import.CopyWorkers)
	opts.VerifyWorkers = pick(importCmdEnv.verifyWorkers, env.Config.Import.VerifyWorkers)
	opts.QueueSize = env.Config.Import.QueueSize

	var sc *scanner.Scanner
	if env.Device != nil {
		sc = scanner.New(env.Device, env.Repo, env.Config.Device.MediaPath)
	}
	im := importer.New(env.Device, env.Repo, sc, string(env.Config.Import.HashType))

	L.Infof("Importing into %s (filters: %s)", opts.TargetDir, opts.Filters)
	report, err := im.Run(ctx, opts)
	if report != nil {
		L.Printf("%s\n", report)
	}
	if err != nil {
		return fmt.Errorf("import aborted: %w", err)
	}
	if report.CopyFailed > 0 || report.VerifyFailed > 0 {
		L.Warnf("%d files failed to copy and %d failed verification, they stay pending for the next run",
			report.CopyFailed, report.VerifyFailed)
	}
	return nil
}

func pick(flagValue int, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func parseFlags(args []string) (*ImportCmdEnv, error) {
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	flags := cmd_env.RegisterCommonFlags(importCmd)
	excludeBefore := importCmd.String("exclude-before", "", "Exclude files created before this time (YYYY-MM-DD HH:MM:SS)")
	excludeAfter := importCmd.String("exclude-after", "", "Exclude files created after this time (YYYY-MM-DD HH:MM:SS)")
	forceAll := importCmd.Bool("force-all", false, "Import all files, even if marked as imported previously")
	overwrite := importCmd.Bool("overwrite", false, "Overwrite existing files on disk")
	useCache := importCmd.Bool("use-cache", false, "Import pending files from the database without scanning the device")
	dryRun := importCmd.Bool("dry-run", false, "Only report what would be imported")
	copyWorkers := importCmd.Int("copy-workers", 0, "Number of concurrent copies")
	verifyWorkers := importCmd.Int("verify-workers", 0, "Number of concurrent verifications")
	importCmd.Usage = func() {
		PrintUsage()
	}

	// allow options after the target directory
	err := importCmd.Parse(args)
	if err != nil {
		return nil, err
	}
	var targetDir string
	if importCmd.NArg() > 0 {
		targetDir = importCmd.Arg(0)
		if err := importCmd.Parse(importCmd.Args()[1:]); err != nil {
			return nil, err
		}
	}
	if targetDir == "" {
		return nil, fmt.Errorf("no target directory provided. For more information check 'archivuelo help import'")
	}
	if importCmd.NArg() > 0 {
		return nil, fmt.Errorf("too many arguments. For more information, check 'archivuelo help import'")
	}
	if err := flags.Apply(); err != nil {
		return nil, err
	}

	// bad dates fail before touching the device or the database
	filters, err := filter.FromStrings(*excludeBefore, *excludeAfter)
	if err != nil {
		return nil, err
	}

	targetDir, err = config.ExpandHome(targetDir)
	if err != nil {
		return nil, err
	}
	targetDirAbs, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, err
	}
	if *copyWorkers < 0 || *verifyWorkers < 0 {
		return nil, fmt.Errorf("worker counts must not be negative")
	}

	return &ImportCmdEnv{
		Flags: flags,
		Options: importer.Options{
			TargetDir: targetDirAbs,
			UseCache:  *useCache,
			ForceAll:  *forceAll,
			Overwrite: *overwrite,
			Filters:   filters,
			DryRun:    *dryRun,
		},
		copyWorkers:   *copyWorkers,
		verifyWorkers: *verifyWorkers,
	}, nil
}
