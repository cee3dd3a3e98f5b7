package ledger

// Entry is one scoring row: a locked pick waiting for, or carrying, a
// tournament result. Finish and Earnings stay nil until results land.
type Entry struct {
	UserID     string
	Tournament string
	Golfer     string
	Finish     *string
	// Earnings is in cents.
	Earnings *int64
}

// Pending reports whether the entry still has no recorded result.
func (e Entry) Pending() bool {
	return e.Finish == nil
}

// ResultRow is one raw row from a weekly results feed.
type ResultRow struct {
	Golfer   string
	Finish   string
	Earnings string
}

// ResultUpdate is a parsed result ready to be written onto an entry.
type ResultUpdate struct {
	UserID     string
	Tournament string
	Finish     string
	Earnings   int64
}

// ReconciliationReport summarizes one reconcile batch.
type ReconciliationReport struct {
	Tournament string
	Updated    int
	Defaulted  int
	Unmatched  []string
}
