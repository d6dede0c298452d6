package domain

// Country is a canonical identity shared by all three datasets.
type Country struct {
	ID          string
	DisplayName string
	Aliases     []string
	// Provisional marks identities minted while reading the border dataset
	// for names that never appeared in the identity dataset.
	Provisional bool
}

// IdentityRecord is one row of the identity dataset (state_name.tsv).
type IdentityRecord struct {
	Number  string
	ID      string
	Name    string
	Start   string
	EndDate string
}

// BorderRecord is one line of the border dataset (borders.txt).
type BorderRecord struct {
	Country   string
	Neighbors []NeighborEntry
}

// NeighborEntry is a neighbor segment of a border line. Name still carries
// the trailing length marker (e.g. "Greece 282 km") as found in the file.
type NeighborEntry struct {
	Name string
}

// DistanceRecord is one row of the capital distance dataset (capdist.csv).
type DistanceRecord struct {
	NumberA string
	CodeA   string
	NumberB string
	CodeB   string
	KM      int
	Miles   int
}
