package ledger

import (
	"strconv"
	"strings"
)

// MissedCut is the finish recorded for golfers absent from a result feed.
const MissedCut = "MC"

// FinishClass is what a finish string counts for in the standings.
type FinishClass struct {
	Win    bool
	TopTen bool
}

// ClassifyFinish interprets a finish string. "1" is an outright win, which
// also counts as a top ten. "T1" is a shared first place: a top ten but not
// a win. Any other numeric position, tied or not, is a top ten when it is
// ten or better. Non-numeric finishes (MC, WD, DQ, ...) count for nothing.
func ClassifyFinish(finish string) FinishClass {
	value := strings.ToUpper(strings.TrimSpace(finish))
	if value == "" {
		return FinishClass{}
	}
	if value == "1" {
		return FinishClass{Win: true, TopTen: true}
	}

	numeric := strings.TrimPrefix(value, "T")
	position, err := strconv.Atoi(numeric)
	if err != nil || position <= 0 {
		return FinishClass{}
	}

	return FinishClass{TopTen: position <= 10}
}

// ParseEarnings converts currency text ("$1,234,567", "1234567") to cents.
// Empty text parses as zero. The bool reports whether the text was
// understood at all.
func ParseEarnings(raw string) (int64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, true
	}

	if dollars, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		if dollars < 0 {
			return 0, false
		}
		return dollars * 100, true
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if value < 0 {
		return 0, false
	}

	return int64(value*100 + 0.5), true
}
