package paging

import "strconv"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a skip/limit window over a filtered result set. Every paged
// listing returns the total number of matching items alongside the window
// so callers can compute page counts as ceil(total/limit).
type Params struct {
	Skip  int
	Limit int
}

// Parse builds Params from raw query string values, applying the defaults
// and clamps the API advertises (skip >= 0, 1 <= limit <= 100).
func Parse(skip, limit string) Params {
	p := Params{Skip: 0, Limit: DefaultLimit}

	if skip != "" {
		if n, err := strconv.Atoi(skip); err == nil && n >= 0 {
			p.Skip = n
		}
	}
	if limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n >= 1 {
			p.Limit = n
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Window returns the [lo, hi) slice bounds for applying p to a result set
// of the given size. A skip past the end yields an empty window.
func (p Params) Window(size int) (int, int) {
	lo := p.Skip
	if lo > size {
		lo = size
	}
	hi := lo + p.Limit
	if hi > size {
		hi = size
	}
	return lo, hi
}
