package ranking

import "errors"

// Sentinel kinds for leaderboard errors.
var (
	ErrNotFound     = errors.New("body not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
