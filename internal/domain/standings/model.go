package standings

// Row is one line of the season leaderboard. Rank is dense: tied totals
// share a rank and the next distinct total takes the following rank.
type Row struct {
	Rank          int
	UserID        string
	DisplayName   string
	TotalEarnings int64
	Wins          int
	TopTens       int
	EventsPlayed  int
}

// Snapshot is one user's view of their own season position.
type Snapshot struct {
	UserID        string
	DisplayName   string
	Rank          int
	TotalEarnings int64
	// BehindLeader is leader total minus this user's total. It is zero for
	// the leader and stays signed rather than being clamped.
	BehindLeader int64
	Wins         int
	TopTens      int
	EventsPlayed int
}
