package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
)

// Asker reads one answer per question. It returns io.EOF once no more
// answers can be read.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// NewAsker returns a survey backed asker when both streams are terminals
// and a plain line reader otherwise.
func NewAsker(in io.Reader, out io.Writer) Asker {
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK && isTerminal(inFile) && isTerminal(outFile) {
		return &surveyAsker{in: inFile, out: outFile}
	}
	return NewLineAsker(in, out)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LineAsker prints the question verbatim and reads a line.
type LineAsker struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineAsker reads answers line by line from in.
func NewLineAsker(in io.Reader, out io.Writer) *LineAsker {
	return &LineAsker{scanner: bufio.NewScanner(in), out: out}
}

func (a *LineAsker) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(a.out, question); err != nil {
		return "", err
	}
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return "", errors.Wrap(err, "read answer")
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.scanner.Text()), nil
}

type surveyAsker struct {
	in  terminal.FileReader
	out terminal.FileWriter
}

func (a *surveyAsker) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var answer string
	in := &survey.Input{Message: strings.TrimSpace(question)}
	err := survey.AskOne(in, &answer, survey.WithStdio(a.in, a.out, os.Stderr))
	if errors.Is(err, terminal.InterruptErr) {
		return "", io.EOF
	}
	if err != nil {
		return "", errors.Wrap(err, "prompt")
	}
	return strings.TrimSpace(answer), nil
}
