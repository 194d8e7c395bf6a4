package checkpointer

import (
	"fmt"
	"time"
)

// FilenameEnumerator returns a function which returns filenames
// numbered consecutively from start+1, e.g. q-1.gob, q-2.gob, ... for
// prefix "q" and extension ".gob". The prefix may include a directory.
func FilenameEnumerator(start int, prefix, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v-%v%v", prefix, i, extension)
	}
}

// FileTimer returns a function which returns filenames suffixed with
// the number of nanoseconds since January 1, 1970.
func FileTimer(prefix, extension string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", prefix, time.Now().UnixNano(),
			extension)
	}
}
