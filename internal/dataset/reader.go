// Package dataset reads and writes the three reference files: the border
// list, the capital distance table and the state name table.
package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/domain"
)

// ErrMalformed marks a record that does not have the expected shape.
var ErrMalformed = errors.New("malformed record")

const (
	borderSeparator   = " = "
	neighborSeparator = ";"
)

// Paths locates the three dataset files.
type Paths struct {
	Borders    string
	Distances  string
	StateNames string
}

// Dataset holds the parsed records of all three files.
type Dataset struct {
	Borders    []domain.BorderRecord
	Distances  []domain.DistanceRecord
	Identities []domain.IdentityRecord
}

// Load reads all three files.
func Load(paths Paths) (Dataset, error) {
	var ds Dataset
	var err error
	if ds.Identities, err = readFile(paths.StateNames, ReadStateNames); err != nil {
		return Dataset{}, err
	}
	if ds.Borders, err = readFile(paths.Borders, ReadBorders); err != nil {
		return Dataset{}, err
	}
	if ds.Distances, err = readFile(paths.Distances, ReadDistances); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	records, err := read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return records, nil
}

// ReadBorders parses lines of the form "Country = A 12 km; B 3 km". A line
// without neighbors is a country with no land borders. Blank lines are skipped.
func ReadBorders(r io.Reader) ([]domain.BorderRecord, error) {
	var records []domain.BorderRecord
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		country, rest, _ := strings.Cut(line, "=")
		country = strings.TrimSpace(country)
		if country == "" {
			return nil, errors.Wrapf(ErrMalformed, "border line %q", line)
		}
		rec := domain.BorderRecord{Country: country}
		for _, part := range strings.Split(rest, neighborSeparator) {
			if part = strings.TrimSpace(part); part != "" {
				rec.Neighbors = append(rec.Neighbors, domain.NeighborEntry{Name: part})
			}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan borders")
	}
	return records, nil
}

// ReadDistances parses the capital distance CSV: a header line, then
// numa,ida,numb,idb,kmdist,midist.
func ReadDistances(r io.Reader) ([]domain.DistanceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse capital distances")
	}
	records := make([]domain.DistanceRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 5 {
			return nil, errors.Wrapf(ErrMalformed, "distance row %d has %d fields", i+1, len(row))
		}
		km, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "distance row %d: kmdist %q", i+1, row[4])
		}
		rec := domain.DistanceRecord{
			NumberA: strings.TrimSpace(row[0]),
			CodeA:   strings.TrimSpace(row[1]),
			NumberB: strings.TrimSpace(row[2]),
			CodeB:   strings.TrimSpace(row[3]),
			KM:      km,
		}
		if len(row) > 5 {
			rec.Miles, _ = strconv.Atoi(strings.TrimSpace(row[5]))
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadStateNames parses the tab separated state name table: a header line,
// then statenum, stateabb, countryname, start, end.
func ReadStateNames(r io.Reader) ([]domain.IdentityRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "parse state names")
	}
	records := make([]domain.IdentityRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 5 {
			return nil, errors.Wrapf(ErrMalformed, "state name row %d has %d fields", i+1, len(row))
		}
		records = append(records, domain.IdentityRecord{
			Number:  strings.TrimSpace(row[0]),
			ID:      strings.TrimSpace(row[1]),
			Name:    strings.TrimSpace(row[2]),
			Start:   strings.TrimSpace(row[3]),
			EndDate: strings.TrimSpace(row[4]),
		})
	}
	return records, nil
}
