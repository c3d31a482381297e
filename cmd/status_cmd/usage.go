package status_cmd

import L "archivuelo/logger"

const usageStr string = `
USAGE
archivuelo status [OPTIONS]

DESCRIPTION
Summarizes the database: how many files are tracked, imported, verified
and still pending. Does not need a connected device.

OPTIONS
--list <filter>
Also list tracked files. Accepted values: all, pending, imported, verify-failed

--target <dir>
Also count the files present in an import directory.

--config, -c
Path to config.json file
Default is: ~/.config/archivuelo/config.json

--log-level, -L <log-level>
Accepted values: silent, error, warn, info, debug

--color <color-mode>
Accepted values: auto, always, never

EXAMPLES
1. Show what the next import would pick up
archivuelo status --list pending

SEE ALSO
1. archivuelo help import
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
