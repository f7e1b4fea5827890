package postgres

import "strconv"

// pos formats a positional placeholder index for dynamically built queries.
func pos(n int) string { return strconv.Itoa(n) }
