package selection

import "time"

// Status describes the lifecycle stage of a user's pick for a tournament.
type Status string

const (
	// StatusUnset means no pick exists for the tournament.
	StatusUnset Status = "UNSET"
	// StatusDrafted means a pick exists and can still be replaced.
	StatusDrafted Status = "DRAFTED"
	// StatusLocked means the pick is final. Locked picks never unlock.
	StatusLocked Status = "LOCKED"
)

// Selection is one user's pick of a golfer for one tournament.
type Selection struct {
	UserID     string
	Tournament string
	Golfer     string
	PickedAt   time.Time
	IsLocked   bool
	LockedAt   *time.Time
}

func (s Selection) Status() Status {
	if s.IsLocked {
		return StatusLocked
	}
	return StatusDrafted
}
