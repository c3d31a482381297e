//go:build !linux

package localfs

import (
	"os"
	"time"
)

func birthtime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
