package geoseal

import "time"

// wallClockUnixSeconds is the default Clock used when a caller does not
// supply one: the system wall clock, truncated to whole seconds per
// spec.md section 4.7 step 5 ("ts: unix_seconds_int").
func wallClockUnixSeconds() int64 {
	return time.Now().Unix()
}
