package cmd

import L "archivuelo/logger"

var usageStr string = `
USAGE
archivuelo [-v | -version] [-h | -help] <command> [<args>]

DESCRIPTION
archivuelo imports photos and videos from a phone or memory card into a
local directory, remembering what it already imported and verifying every
copy.

COMMANDS
These are common archivuelo commands used in various situations -
help       Help about a subcommand
scan       Records the media files found on a device
import     Copies and verifies media files into a directory
status     Summarizes what has been imported so far
tui        Interactive terminal user interface
version    Prints version

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
