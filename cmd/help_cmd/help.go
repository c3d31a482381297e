package help_cmd

import (
	"archivuelo/cmd/import_cmd"
	"archivuelo/cmd/scan_cmd"
	"archivuelo/cmd/status_cmd"
	"archivuelo/cmd/tui_cmd"
	"context"
	"fmt"
)

func Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		PrintUsage()
		return nil
	}

	switch args[0] {
	case "scan":
		scan_cmd.PrintUsage()
	case "import":
		import_cmd.PrintUsage()
	case "status":
		status_cmd.PrintUsage()
	case "tui":
		tui_cmd.PrintUsage()
	case "help":
		PrintUsage()
	case "config":
		ConfigPrintUsage()
	default:
		return fmt.Errorf("no such command: %s", args[0])
	}
	return nil
}
