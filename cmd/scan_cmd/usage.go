package scan_cmd

import L "archivuelo/logger"

const usageStr string = `
USAGE
archivuelo scan [OPTIONS]

DESCRIPTION
Walks the media directory of the connected device and records every file
it has not seen before. Files that are already tracked are left as they are.
Nothing is copied, see 'archivuelo help import' for that.

OPTIONS
--clear-db
Clear the database of scanned media files and quit.
This does not affect any media files, neither on a device nor on disk.

--reset-import-status
Mark every tracked file as not imported and quit. The next import
considers all of them again.

--assume-yes, -y
Assume yes to all yes/no prompts

--device, -d <path>
Directory where the device is mounted. Takes precedence over
device.root in the CONFIG.

--config, -c
Path to config.json file
Default is: ~/.config/archivuelo/config.json
Use "archivuelo help config" for more information.

--log-level, -L <log-level>
Specify log output level
Default: info
Accepted values (in order of increasing amount of output) -
silent, error, warn, info, debug

--color <color-mode>
Specify output color mode.
Default: auto
Accepted values: auto, always, never

EXAMPLES
1. Scan an iPhone mounted with ifuse
archivuelo scan -d /mnt/iphone

2. Start over with an empty database
archivuelo scan --clear-db

SEE ALSO
1. archivuelo help import
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
