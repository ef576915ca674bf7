//go:build !linux && !darwin

package fileops

import (
	"os"
	"time"
)

// statTimes approximates access and change times with the modification time
// on platforms without a portable stat record.
func statTimes(info os.FileInfo) (atime, ctime time.Time) {
	return info.ModTime(), info.ModTime()
}
