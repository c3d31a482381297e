package import_cmd

import L "archivuelo/logger"

const usageStr string = `
USAGE
archivuelo import [OPTIONS] TARGET_DIR

DESCRIPTION
Copies media files from the connected device into TARGET_DIR, keeping the
directory layout of the device. Every file is hashed while it is copied and
checked again once it is on disk. Files imported by an earlier run are
skipped.

OPTIONS
--exclude-before <time>
Exclude all files with creation time before this time.
Accepted formats: YYYY-MM-DD HH:MM:SS, YYYY-MM-DD HH:MM, YYYY-MM-DD

--exclude-after <time>
Exclude all files with creation time after this time.
Same formats as --exclude-before.

--force-all
Import all files, even if marked as imported previously

--overwrite
Overwrite existing files on disk. Without it, files whose destination
already exists are skipped.

--use-cache
Take the pending files from the database instead of scanning the device.
Run 'archivuelo scan' first.

--dry-run
Only count the files that would be imported.

--copy-workers <n>, --verify-workers <n>
Number of concurrent copies and verifications.
Defaults come from import.copy_workers and import.verify_workers in the CONFIG.

--device, -d <path>
Directory where the device is mounted.

--config, -c
Path to config.json file
Default is: ~/.config/archivuelo/config.json

--log-level, -L <log-level>
Accepted values: silent, error, warn, info, debug

--color <color-mode>
Accepted values: auto, always, never

TARGET_DIR
Directory the media files are copied into. Created if missing.

EXAMPLES
1. Import the first half of 2024
archivuelo import -d /mnt/iphone --exclude-before 2024-01-01 --exclude-after "2024-06-30 23:59:59" ~/Pictures/iphone

2. Import whatever the last scan found but was not imported yet
archivuelo import --use-cache ~/Pictures/iphone

EXIT STATUS
0 on success, 2 when a date filter could not be parsed, 1 on any other error.

SEE ALSO
1. archivuelo help scan
2. archivuelo help status
`

func Usage() string {
	return usageStr
}

func PrintUsage() {
	L.Print(usageStr)
}
