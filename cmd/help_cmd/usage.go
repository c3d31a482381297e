package help_cmd

import L "archivuelo/logger"

var usageStr string = `
USAGE
    archivuelo help <command>

DESCRIPTION
    Prints usage information for a specified subcommand.

COMMANDS
    These are common archivuelo commands used in various situations -
        help       Help about a subcommand
        config     Help about config.json file
        scan       Records the media files found on a device
        import     Copies and verifies media files into a directory
        status     Summarizes what has been imported so far
        tui        Interactive terminal user interface

EXAMPLES
    See 'archivuelo help <command>' to read about a specific subcommand.

SEE ALSO
    1. archivuelo help scan
    2. archivuelo help import
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
