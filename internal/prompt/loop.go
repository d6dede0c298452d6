// Package prompt runs the interactive route query loop.
package prompt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roadtrip/roadtrip/internal/domain"
)

const (
	firstQuestion  = "Enter the name of the first country (type EXIT to quit): "
	secondQuestion = "Enter the name of the second country (type EXIT to quit): "
	invalidMessage = "Invalid country name. Please enter a valid country name."
	exitWord       = "EXIT"
)

// Router is what the loop needs from the route service.
type Router interface {
	IsValidCountry(name string) bool
	ShortestPath(from, to string) (domain.Route, error)
	FormatRoute(route domain.Route) []string
	Suggest(name string) []string
}

// Loop asks for pairs of countries and prints the route between them until
// the user types EXIT or input ends.
type Loop struct {
	router Router
	asker  Asker
	out    io.Writer
	logger *slog.Logger
}

// NewLoop wires a loop. A nil logger discards.
func NewLoop(router Router, asker Asker, out io.Writer, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{router: router, asker: asker, out: out, logger: logger}
}

// IsExit reports whether input asks to leave the loop.
func IsExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), exitWord)
}

// Run blocks until the user exits, input ends or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		from, ok, err := l.askCountry(ctx, firstQuestion)
		if err != nil || !ok {
			return err
		}
		to, ok, err := l.askCountry(ctx, secondQuestion)
		if err != nil || !ok {
			return err
		}
		if err := l.printRoute(from, to); err != nil {
			return err
		}
	}
}

// askCountry repeats question until a valid country is given. ok is false
// when the user asked to quit.
func (l *Loop) askCountry(ctx context.Context, question string) (string, bool, error) {
	for {
		answer, err := l.asker.Ask(ctx, question)
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		if IsExit(answer) {
			return "", false, nil
		}
		if l.router.IsValidCountry(answer) {
			return answer, true, nil
		}

		l.logger.Debug("rejected country name", "input", answer)
		fmt.Fprintln(l.out, invalidMessage)
		if hints := l.router.Suggest(answer); len(hints) > 0 {
			fmt.Fprintf(l.out, "Did you mean: %s?\n", strings.Join(hints, ", "))
		}
	}
}

func (l *Loop) printRoute(from, to string) error {
	route, err := l.router.ShortestPath(from, to)
	if err != nil {
		return errors.Wrapf(err, "route from %s to %s", from, to)
	}
	return WriteRoute(l.out, from, to, l.router.FormatRoute(route))
}

// WriteRoute prints formatted hops under a "Route from" header, or the
// no-path message when there are none.
func WriteRoute(w io.Writer, from, to string, lines []string) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintf(w, "No path found between %s and %s\n", from, to)
		return err
	}
	if _, err := fmt.Fprintf(w, "Route from %s to %s:\n", from, to); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "* %s\n", line); err != nil {
			return err
		}
	}
	return nil
}
