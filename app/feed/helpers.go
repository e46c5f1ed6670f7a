package feed

import (
	"time"
)

// GetTimeout returns the fetch timeout as time.Duration
func (s *ConfigSettings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 10 * time.Second // default 10 seconds
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetWindowStart returns the lower bound of the fetch window relative to now,
// or the zero time if no window is configured.
func (s *ConfigSettings) GetWindowStart(now time.Time) time.Time {
	if s.WindowDays <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -s.WindowDays)
}
