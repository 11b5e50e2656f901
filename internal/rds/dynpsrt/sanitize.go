// Package dynpsrt implements dynamic PS (station name scrolling) and
// dynamic RT (multi-segment RadioText rotation) by watching a text file for
// changes and periodically pushing the next chunk into an rds.State.
package dynpsrt

import "strings"

// sanitize removes control characters (below 0x20) and trims
// leading/trailing whitespace, mirroring rds_string_sanitize. It returns the
// empty string if nothing else remains, which callers treat as "nothing to
// send".
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
