package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadtrip/roadtrip/internal/dataset"
	"github.com/roadtrip/roadtrip/internal/domain"
	"github.com/roadtrip/roadtrip/internal/graphstore"
	"github.com/roadtrip/roadtrip/internal/identity"
)

func writeDataset(t *testing.T) dataset.Paths {
	t.Helper()
	current := identity.DefaultCurrentDate
	ds := dataset.Dataset{
		Identities: []domain.IdentityRecord{
			{Number: "339", ID: "ALB", Name: "Albania", Start: "1914-01-01", EndDate: current},
			{Number: "350", ID: "GRC", Name: "Greece", Start: "1827-01-01", EndDate: current},
			{Number: "395", ID: "ICE", Name: "Iceland", Start: "1944-06-17", EndDate: current},
		},
		Borders: []domain.BorderRecord{
			{Country: "Albania", Neighbors: []domain.NeighborEntry{{Name: "Greece 212 km"}}},
			{Country: "Greece", Neighbors: []domain.NeighborEntry{{Name: "Albania 212 km"}}},
			{Country: "Iceland"},
		},
		Distances: []domain.DistanceRecord{
			{NumberA: "339", CodeA: "ALB", NumberB: "350", CodeB: "GRC", KM: 360, Miles: 224},
			{NumberA: "350", CodeA: "GRC", NumberB: "339", CodeB: "ALB", KM: 360, Miles: 224},
		},
	}
	paths, err := dataset.Write(ds, t.TempDir())
	require.NoError(t, err)
	return paths
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func datasetFlags(p dataset.Paths) []string {
	return []string{"--borders", p.Borders, "--capdist", p.Distances, "--state-names", p.StateNames}
}

func TestRouteCommand(t *testing.T) {
	paths := writeDataset(t)

	out, err := execute(t, "", append([]string{"route", "Albania", "Greece"}, datasetFlags(paths)...)...)
	require.NoError(t, err)
	assert.Equal(t, "Route from Albania to Greece:\n* Albania --> Greece (360 km.)\n", out)

	out, err = execute(t, "", append([]string{"route", "Iceland", "Greece"}, datasetFlags(paths)...)...)
	require.NoError(t, err)
	assert.Equal(t, "No path found between Iceland and Greece\n", out)
}

func TestRouteCommand_UnknownCountryHints(t *testing.T) {
	paths := writeDataset(t)

	_, err := execute(t, "", append([]string{"route", "Albnia", "Greece"}, datasetFlags(paths)...)...)
	require.Error(t, err)

	var buf bytes.Buffer
	reportError(&buf, err)
	assert.Contains(t, buf.String(), "unknown country")
	assert.Contains(t, cerrors.FlattenHints(err), "Albania")
}

func TestDistanceCommand(t *testing.T) {
	paths := writeDataset(t)

	out, err := execute(t, "", append([]string{"distance", "Greece", "Albania"}, datasetFlags(paths)...)...)
	require.NoError(t, err)
	assert.Equal(t, "360 km.\n", out)

	out, err = execute(t, "", append([]string{"distance", "Greece", "Iceland"}, datasetFlags(paths)...)...)
	require.NoError(t, err)
	assert.Equal(t, "unknown km.\n", out)
}

func TestCountriesCommand(t *testing.T) {
	paths := writeDataset(t)

	out, err := execute(t, "", append([]string{"countries"}, datasetFlags(paths)...)...)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ALB"))
	assert.Contains(t, lines[2], "Iceland")
}

func TestInteractiveWithPositionalPaths(t *testing.T) {
	paths := writeDataset(t)

	out, err := execute(t, "albania\nGreece\nEXIT\n", paths.Borders, paths.Distances, paths.StateNames)
	require.NoError(t, err)
	assert.Contains(t, out, "Route from albania to Greece:\n* Albania --> Greece (360 km.)\n")
}

func TestRootCommand_RejectsPartialPaths(t *testing.T) {
	_, err := execute(t, "", "borders.txt")
	assert.Error(t, err)
}

func TestRootCommand_MissingDatasets(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "", "countries", "--borders", filepath.Join(dir, "nope.txt"))
	assert.Error(t, err)
}

func TestExportCommand_RequiresGraphURI(t *testing.T) {
	t.Setenv("GRAPH_URI", "")
	paths := writeDataset(t)

	_, err := execute(t, "", append([]string{"export"}, datasetFlags(paths)...)...)
	assert.True(t, errors.Is(err, graphstore.ErrMissingURI))
}

func TestExport_WritesThroughClient(t *testing.T) {
	paths := writeDataset(t)
	a := &app{
		envFile:    filepath.Join(t.TempDir(), "none.env"),
		borders:    paths.Borders,
		capdist:    paths.Distances,
		stateNames: paths.StateNames,
	}
	require.NoError(t, a.setup(&cobra.Command{Use: "export"}, nil))

	rt, err := a.loadRoadTrip()
	require.NoError(t, err)

	mem := graphstore.NewMemoryClient()
	var out bytes.Buffer
	require.NoError(t, a.export(context.Background(), rt, mem, 2, &out))
	assert.Equal(t, "exported 3 countries and 2 borders\n", out.String())
	assert.Len(t, mem.WriteCalls(), 7)
}
