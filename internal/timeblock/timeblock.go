// Package timeblock defines the fixed partition of the instructional day into
// academic-hour blocks, the unit used for reservation quota accounting.
package timeblock

// Block is one academic hour of the instructional day.
// Times are "HH:MM" strings; zero-padded, so lexical order is time order.
type Block struct {
	Start string
	End   string
}

// catalog is the canonical instructional day: 50-minute blocks with a
// ten-minute break every two blocks and a lunch gap at 13:10-14:00.
var catalog = []Block{
	{"07:00", "07:50"},
	{"07:50", "08:40"},
	{"08:50", "09:40"},
	{"09:40", "10:30"},
	{"10:40", "11:30"},
	{"11:30", "12:20"},
	{"12:20", "13:10"},
	{"14:00", "14:50"},
	{"14:50", "15:40"},
	{"15:50", "16:40"},
	{"16:40", "17:30"},
	{"17:40", "18:30"},
	{"18:30", "19:20"},
	{"19:20", "20:10"},
	{"20:10", "21:00"},
}

// Catalog returns the ordered block list.
func Catalog() []Block {
	out := make([]Block, len(catalog))
	copy(out, catalog)
	return out
}

// DayStart is the first instructional minute.
func DayStart() string { return catalog[0].Start }

// DayEnd is the last instructional minute.
func DayEnd() string { return catalog[len(catalog)-1].End }

// CountBlocksOverlapping returns how many catalog blocks intersect the
// half-open interval [start, end). A reservation that is not block-aligned
// still consumes every block it touches.
func CountBlocksOverlapping(start, end string) int {
	if start >= end {
		return 0
	}
	n := 0
	for _, b := range catalog {
		if start < b.End && end > b.Start {
			n++
		}
	}
	return n
}

// EndTimeForBlockSpan resolves "start at X for N academic hours" into an end
// time. The start must match a block boundary exactly and the span must stay
// inside the catalog; otherwise ok is false and the caller rejects the input.
func EndTimeForBlockSpan(start string, blockCount int) (string, bool) {
	if blockCount <= 0 {
		return "", false
	}
	for i, b := range catalog {
		if b.Start == start {
			last := i + blockCount - 1
			if last >= len(catalog) {
				return "", false
			}
			return catalog[last].End, true
		}
	}
	return "", false
}
