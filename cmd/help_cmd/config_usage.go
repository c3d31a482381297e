package help_cmd

import (
	L "archivuelo/logger"
)

const configUsageStr string = `
CONFIGURATION
    Configuration file is a JSON file describing the device to import from
    and how imports run. You could have different config.json files for
    different devices.

    Some parts of the configuration file can be overriden from CLI arguments.
    When you first run the program, a default config will be created for you at
    '~/.config/archivuelo/config.json'. Keys left out keep their defaults.

SAMPLE CONFIG

        {
            "db_path": "",
            "device": {
                "kind": "local",
                "root": "/mnt/iphone",
                "media_path": "/DCIM",
                "max_read_size": 4194304
            },
            "import": {
                "copy_workers": 4,
                "verify_workers": 2,
                "queue_size": 64,
                "hash_type": "xxh3_64"
            }
        }

OPTIONS
    db_path
        Location of the SQLite database tracking the device's files.
        Empty means '~/.config/archivuelo/archivuelo.db'.

    device.kind
        How the device is reached. Supported values: local
        (a phone or card mounted into the file system, e.g. with ifuse)

    device.root
        Mount point of the device. Equivalent to --device.

    device.media_path
        Directory on the device that is scanned recursively.

    device.max_read_size
        Largest single read issued against the device, in bytes.

    import.copy_workers, import.verify_workers
        Number of concurrent copies and verifications.
        Equivalent to --copy-workers and --verify-workers.

    import.queue_size
        Capacity of the copy and verify queues.

    import.hash_type
        Digest stored with every import and checked on verification.
        Supported values: xxh3_64, xxh64
`

func ConfigUsage() string {
	return configUsageStr
}

func ConfigPrintUsage() {
	L.Print(configUsageStr)
}
