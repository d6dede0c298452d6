package domain

import "strconv"

// Distance is an edge or path length in kilometres. The zero value is
// Unknown: a border that exists but has no measured capital distance.
type Distance struct {
	km    int
	known bool
}

// Unknown is the weight of a border without a measured distance.
var Unknown = Distance{}

// Known returns a measured distance. Negative inputs are clamped to zero.
func Known(km int) Distance {
	if km < 0 {
		km = 0
	}
	return Distance{km: km, known: true}
}

// IsKnown reports whether the distance was measured.
func (d Distance) IsKnown() bool { return d.known }

// KM returns the measured kilometres and whether they are known.
func (d Distance) KM() (int, bool) { return d.km, d.known }

// Add sums two distances. The result is Unknown if either side is.
func (d Distance) Add(other Distance) Distance {
	if !d.known || !other.known {
		return Unknown
	}
	return Known(d.km + other.km)
}

// Less orders known distances by length and places Unknown after every
// known distance. Two Unknown distances are equal.
func (d Distance) Less(other Distance) bool {
	switch {
	case d.known && other.known:
		return d.km < other.km
	case d.known:
		return true
	default:
		return false
	}
}

func (d Distance) String() string {
	if !d.known {
		return "unknown"
	}
	return strconv.Itoa(d.km)
}
