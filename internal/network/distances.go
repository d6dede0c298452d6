package network

import (
	"strings"

	"github.com/roadtrip/roadtrip/internal/domain"
)

// twoLetterPad completes the two-letter codes of the distance dataset to
// the three-letter codes of the identity dataset ("UK" -> "UKG").
const twoLetterPad = "G"

// NormalizeCode trims code and pads two-letter codes.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 2 {
		code += twoLetterPad
	}
	return code
}

// LoadDistances overwrites the weight of every existing edge named by a
// record with its measured distance. Records without a matching border
// edge are ignored. It returns how many records were applied and ignored.
func LoadDistances(g *Graph, records []domain.DistanceRecord) (measured, ignored int) {
	for _, rec := range records {
		from := NormalizeCode(rec.CodeA)
		to := NormalizeCode(rec.CodeB)
		if g.SetWeight(from, to, domain.Known(rec.KM)) {
			measured++
			continue
		}
		ignored++
	}
	return measured, ignored
}
