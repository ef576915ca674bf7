//go:build linux

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
		return time.Unix(st.Atim.Sec, st.Atim.Nsec), time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime(), info.ModTime()
}
