package cnis

import (
	"strconv"
)

// Segment is the slice of document text belonging to one bond.
type Segment struct {
	Text   string
	Offset int
}

// Sequence returns the leading sequence number of the segment, or 0 when absent.
func (s Segment) Sequence() int {
	return leadingSequence(s.Text)
}

// SegmentText splits text into bond blocks.
//
// A block starts at every short integer that is followed by whitespace and a
// NIT, CNPJ or CEI shaped number, and runs to the next such anchor or the end of
// the text. Text before the first anchor (the identity header) belongs to no block.
// Concatenating the returned texts reproduces text[segments[0].Offset:].
func SegmentText(text string) []Segment {
	locs := anchorPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(locs))
	for i, loc := range locs {
		start := loc[2]
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][2]
		}
		segments = append(segments, Segment{Offset: start, Text: text[start:end]})
	}
	return segments
}

func leadingSequence(block string) int {
	m := leadingSeq.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
