package paging

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name        string
		skip, limit string
		want        Params
	}{
		{"defaults", "", "", Params{Skip: 0, Limit: 20}},
		{"explicit", "40", "25", Params{Skip: 40, Limit: 25}},
		{"limit clamped to max", "0", "500", Params{Skip: 0, Limit: 100}},
		{"zero limit falls back", "0", "0", Params{Skip: 0, Limit: 20}},
		{"negative values fall back", "-3", "-1", Params{Skip: 0, Limit: 20}},
		{"garbage falls back", "abc", "xyz", Params{Skip: 0, Limit: 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.skip, tc.limit); got != tc.want {
				t.Fatalf("Parse(%q, %q) = %+v, want %+v", tc.skip, tc.limit, got, tc.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		name   string
		p      Params
		size   int
		lo, hi int
	}{
		{"first page", Params{Skip: 0, Limit: 3}, 10, 0, 3},
		{"middle page", Params{Skip: 3, Limit: 3}, 10, 3, 6},
		{"short last page", Params{Skip: 9, Limit: 3}, 10, 9, 10},
		{"skip past the end", Params{Skip: 50, Limit: 3}, 10, 10, 10},
		{"empty set", Params{Skip: 0, Limit: 20}, 0, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := tc.p.Window(tc.size)
			if lo != tc.lo || hi != tc.hi {
				t.Fatalf("Window(%d) = [%d, %d), want [%d, %d)", tc.size, lo, hi, tc.lo, tc.hi)
			}
		})
	}
}
