package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadtrip/roadtrip/internal/domain"
)

type stubRouter struct {
	valid  map[string]bool
	routes map[string]domain.Route
}

func (s stubRouter) IsValidCountry(name string) bool { return s.valid[name] }

func (s stubRouter) ShortestPath(from, to string) (domain.Route, error) {
	return s.routes[from+"|"+to], nil
}

func (s stubRouter) FormatRoute(route domain.Route) []string { return route.Lines() }

func (s stubRouter) Suggest(name string) []string {
	if strings.HasPrefix(name, "Gre") {
		return []string{"Greece"}
	}
	return nil
}

func newStub() stubRouter {
	return stubRouter{
		valid: map[string]bool{"Albania": true, "Greece": true, "Iceland": true},
		routes: map[string]domain.Route{
			"Albania|Greece": {Hops: []domain.Hop{{From: "Albania", To: "Greece", Distance: domain.Known(360)}}},
		},
	}
}

func run(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	loop := NewLoop(newStub(), NewLineAsker(strings.NewReader(input), &out), &out, nil)
	require.NoError(t, loop.Run(context.Background()))
	return out.String()
}

func TestLoop_PrintsRoute(t *testing.T) {
	out := run(t, "Albania\nGreece\nEXIT\n")

	assert.Equal(t,
		firstQuestion+secondQuestion+
			"Route from Albania to Greece:\n"+
			"* Albania --> Greece (360 km.)\n"+
			firstQuestion,
		out)
}

func TestLoop_NoPath(t *testing.T) {
	out := run(t, "Iceland\nGreece\nexit\n")
	assert.Contains(t, out, "No path found between Iceland and Greece\n")
}

func TestLoop_RepromptsInvalidNames(t *testing.T) {
	out := run(t, "Narnia\nAlbania\nGrece\nGreece\nExit\n")

	assert.Equal(t, 2, strings.Count(out, invalidMessage))
	assert.Equal(t, 3, strings.Count(out, firstQuestion))
	assert.Equal(t, 2, strings.Count(out, secondQuestion))
	assert.Contains(t, out, "Did you mean: Greece?\n")
	assert.Contains(t, out, "Route from Albania to Greece:")
}

func TestLoop_ExitOnSecondQuestion(t *testing.T) {
	out := run(t, "Albania\n  EXIT  \n")
	assert.NotContains(t, out, "Route from")
	assert.True(t, strings.HasSuffix(out, secondQuestion))
}

func TestLoop_StopsAtEndOfInput(t *testing.T) {
	out := run(t, "Albania\n")
	assert.True(t, strings.HasSuffix(out, secondQuestion))
}

func TestLoop_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	loop := NewLoop(newStub(), NewLineAsker(strings.NewReader("Albania\n"), &out), &out, nil)
	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
	assert.Empty(t, out.String())
}

func TestIsExit(t *testing.T) {
	assert.True(t, IsExit("exit"))
	assert.True(t, IsExit(" EXIT "))
	assert.False(t, IsExit("exits"))
}

func TestNewAsker_FallsBackToLines(t *testing.T) {
	asker := NewAsker(strings.NewReader("x\n"), &bytes.Buffer{})
	_, ok := asker.(*LineAsker)
	assert.True(t, ok)
}
