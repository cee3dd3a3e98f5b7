package rankings

// Player is one row of the world-ranking sheet.
type Player struct {
	Rank         int
	Name         string
	Country      string
	Tour         string
	Availability int
}

// AnnotatedPlayer is a ranking row decorated with the caller's pick history.
type AnnotatedPlayer struct {
	Player
	Used           bool
	UsedTournament string
}
