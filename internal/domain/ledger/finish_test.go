package ledger

import "testing"

func TestClassifyFinish(t *testing.T) {
	t.Parallel()

	cases := []struct {
		finish string
		want   FinishClass
	}{
		{"1", FinishClass{Win: true, TopTen: true}},
		{"T1", FinishClass{Win: false, TopTen: true}},
		{"2", FinishClass{TopTen: true}},
		{"T10", FinishClass{TopTen: true}},
		{"10", FinishClass{TopTen: true}},
		{"T11", FinishClass{}},
		{"45", FinishClass{}},
		{"MC", FinishClass{}},
		{"WD", FinishClass{}},
		{"DQ", FinishClass{}},
		{"CUT", FinishClass{}},
		{"", FinishClass{}},
		{" t9 ", FinishClass{TopTen: true}},
	}

	for _, tc := range cases {
		got := ClassifyFinish(tc.finish)
		if got != tc.want {
			t.Fatalf("ClassifyFinish(%q) = %+v, want %+v", tc.finish, got, tc.want)
		}
	}
}

func TestParseEarnings(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"$1,234,567", 123456700, true},
		{"1234567", 123456700, true},
		{"$0", 0, true},
		{"", 0, true},
		{"  $18,950  ", 1895000, true},
		{"1234.56", 123456, true},
		{"n/a", 0, false},
		{"-500", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseEarnings(tc.raw)
		if ok != tc.wantOK {
			t.Fatalf("ParseEarnings(%q) ok = %v, want %v", tc.raw, ok, tc.wantOK)
		}
		if got != tc.want {
			t.Fatalf("ParseEarnings(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
