package install

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

type timestamps struct {
	access   time.Time
	modified time.Time
}

// fileTimes reads access and modification times with nanosecond precision.
// Creation time is not carried: Linux offers no portable way to set it.
func fileTimes(path string) (timestamps, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return timestamps{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return timestamps{
		access:   time.Unix(st.Atim.Sec, st.Atim.Nsec),
		modified: time.Unix(st.Mtim.Sec, st.Mtim.Nsec),
	}, nil
}
