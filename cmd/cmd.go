package cmd

import (
	"archivuelo/cmd/help_cmd"
	"archivuelo/cmd/import_cmd"
	"archivuelo/cmd/scan_cmd"
	"archivuelo/cmd/status_cmd"
	"archivuelo/cmd/tui_cmd"
	"archivuelo/cmd/version_cmd"
	"context"
)

func Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		PrintUsage()
		return nil
	}

	values := map[string]string{
		"binary_name":  args[0],
		"command_name": args[1],
	}

	ctx = context.WithValue(ctx, version_cmd.ValuesKey, values)

	switch args[1] {
	case "scan":
		return scan_cmd.Execute(ctx, args[2:])
	case "import":
		return import_cmd.Execute(ctx, args[2:])
	case "status":
		return status_cmd.Execute(ctx, args[2:])
	case "tui":
		return tui_cmd.Execute(ctx, args[2:])
	case "help", "--help", "-h":
		return help_cmd.Execute(ctx, args[2:])
	case "version", "--version", "-v":
		return version_cmd.Execute(ctx, args[2:])
	default:
		PrintUsage()
		return nil
	}
}
