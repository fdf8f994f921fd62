package service

import "time"

// clock reads now (or the wall clock when nil) in UTC at the millisecond
// precision every store driver keeps.
func clock(now func() time.Time) time.Time {
	t := time.Now()
	if now != nil {
		t = now()
	}
	return t.UTC().Truncate(time.Millisecond)
}
