package schedule

import "time"

// Tournament is one event on the season schedule.
type Tournament struct {
	Name    string
	StartAt time.Time
	Purse   string
}

// Started reports whether the tournament start time has passed.
func (t Tournament) Started(now time.Time) bool {
	return !t.StartAt.After(now)
}
