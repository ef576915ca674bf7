//go:build darwin

package fileops

import (
	"os"
	"syscall"
	"time"
)

// statTimes extracts access and change times from the platform stat record,
// falling back to the modification time when unavailable.
func statTimes(info os.FileInfo) (atime, ctime time.Time) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec), time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
	}
	return info.ModTime(), info.ModTime()
}
