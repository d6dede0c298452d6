package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Default file names inside a dataset directory.
const (
	BordersFile    = "borders.txt"
	DistancesFile  = "capdist.csv"
	StateNamesFile = "state_name.tsv"
)

// PathsIn returns the default file locations inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Borders:    filepath.Join(dir, BordersFile),
		Distances:  filepath.Join(dir, DistancesFile),
		StateNames: filepath.Join(dir, StateNamesFile),
	}
}

// Write serializes ds into the three default files under dir.
func Write(ds Dataset, dir string) (Paths, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, errors.Wrap(err, "create dataset dir")
	}
	paths := PathsIn(dir)
	if err := writeFile(paths.Borders, func(w io.Writer) error { return WriteBorders(w, ds) }); err != nil {
		return Paths{}, err
	}
	if err := writeFile(paths.Distances, func(w io.Writer) error { return WriteDistances(w, ds) }); err != nil {
		return Paths{}, err
	}
	if err := writeFile(paths.StateNames, func(w io.Writer) error { return WriteStateNames(w, ds) }); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// WriteBorders writes one "Country = A; B" line per border record.
func WriteBorders(w io.Writer, ds Dataset) error {
	for _, rec := range ds.Borders {
		names := make([]string, 0, len(rec.Neighbors))
		for _, n := range rec.Neighbors {
			names = append(names, n.Name)
		}
		line := rec.Country
		if len(names) > 0 {
			line += borderSeparator + strings.Join(names, neighborSeparator+" ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteDistances writes the capital distance CSV with its header.
func WriteDistances(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"numa", "ida", "numb", "idb", "kmdist", "midist"}); err != nil {
		return err
	}
	for _, rec := range ds.Distances {
		row := []string{rec.NumberA, rec.CodeA, rec.NumberB, rec.CodeB, strconv.Itoa(rec.KM), strconv.Itoa(rec.Miles)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStateNames writes the tab separated state name table with its header.
func WriteStateNames(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write([]string{"statenum", "stateabb", "countryname", "start", "end"}); err != nil {
		return err
	}
	for _, rec := range ds.Identities {
		if err := cw.Write([]string{rec.Number, rec.ID, rec.Name, rec.Start, rec.EndDate}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
