package dataset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadtrip/roadtrip/internal/domain"
)

func TestReadBorders(t *testing.T) {
	input := "Albania = Greece 282 km; Montenegro 186 km; North Macedonia 181 km; Serbia 115 km\n" +
		"\n" +
		"Iceland = \n" +
		"Bahamas, The\n"

	records, err := ReadBorders(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Albania", records[0].Country)
	assert.Equal(t, []domain.NeighborEntry{
		{Name: "Greece 282 km"}, {Name: "Montenegro 186 km"}, {Name: "North Macedonia 181 km"}, {Name: "Serbia 115 km"},
	}, records[0].Neighbors)

	assert.Equal(t, "Iceland", records[1].Country)
	assert.Empty(t, records[1].Neighbors)
	assert.Equal(t, "Bahamas, The", records[2].Country)
}

func TestReadBorders_Malformed(t *testing.T) {
	_, err := ReadBorders(strings.NewReader(" = Greece 1 km\n"))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestReadDistances(t *testing.T) {
	input := "numa,ida,numb,idb,kmdist,midist\n" +
		"339,ALB,350,GRC,360,224\n" +
		"200,UK,205,IRE,464,288\n"

	records, err := ReadDistances(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.DistanceRecord{NumberA: "339", CodeA: "ALB", NumberB: "350", CodeB: "GRC", KM: 360, Miles: 224}, records[0])
	assert.Equal(t, "UK", records[1].CodeA)
}

func TestReadDistances_Malformed(t *testing.T) {
	_, err := ReadDistances(strings.NewReader("numa,ida,numb,idb,kmdist,midist\n339,ALB,350,GRC,far,1\n"))
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = ReadDistances(strings.NewReader("numa,ida,numb,idb,kmdist,midist\n339,ALB\n"))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestReadStateNames(t *testing.T) {
	input := "statenum\tstateabb\tcountryname\tstart\tend\n" +
		"2\tUSA\tUnited States of America\t1816-01-01\t2020-12-31\n" +
		"260\tGFR\tGerman Federal Republic\t1955-05-05\t1990-10-02\n"

	records, err := ReadStateNames(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.IdentityRecord{Number: "2", ID: "USA", Name: "United States of America", Start: "1816-01-01", EndDate: "2020-12-31"}, records[0])

	_, err = ReadStateNames(strings.NewReader("header\nonly\tthree\tfields\n"))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestWriteThenLoad(t *testing.T) {
	ds := Dataset{
		Borders: []domain.BorderRecord{
			{Country: "Albania", Neighbors: []domain.NeighborEntry{{Name: "Greece 282 km"}, {Name: "Serbia 115 km"}}},
			{Country: "Iceland"},
		},
		Distances: []domain.DistanceRecord{
			{NumberA: "339", CodeA: "ALB", NumberB: "350", CodeB: "GRC", KM: 360, Miles: 224},
		},
		Identities: []domain.IdentityRecord{
			{Number: "437", ID: "CDI", Name: "Cote D’Ivoire", Start: "1960-08-07", EndDate: "2020-12-31"},
			{Number: "732", ID: "ROK", Name: "Korea, Republic of", Start: "1949-01-01", EndDate: "2020-12-31"},
		},
	}

	paths, err := Write(ds, filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	loaded, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, ds, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(PathsIn(t.TempDir()))
	assert.Error(t, err)
}
