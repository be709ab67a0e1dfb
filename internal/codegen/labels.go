package codegen

import "strconv"

// newLabelSet allocates the next counter value and returns one full label
// per suffix ("IF", "ELSE", "ENDIF", ...), all sharing that counter — two
// concurrently open constructs never collide since each call advances
// g.labelCounter exactly once.
func (g *Generator) newLabelSet(suffixes ...string) []string {
	n := strconv.Itoa(g.labelCounter)
	g.labelCounter++
	labels := make([]string, len(suffixes))
	for i, suf := range suffixes {
		labels[i] = "L" + n + suf
	}
	return labels
}
