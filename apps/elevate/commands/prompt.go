package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal // mockable

// backInput moves the wizard one step back.
const backInput = "<"

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *prompter) printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// ask prints `label` (and the current value, if any) and reads one line.
// An empty answer keeps `current`.
// If EOF occurs after some input was read, the partial line is returned.
func (p *prompter) ask(label, current string) (string, error) {
	if current != "" {
		p.printf("%s [%s]\n> ", label, current)
	} else {
		p.printf("%s\n> ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

// choose prints numbered `options` and returns the picked value.
// Answers may be the option number or the value itself.
func (p *prompter) choose(label, current string, options, values []string) (string, error) {
	p.println(label)
	for i, opt := range options {
		p.printf("  %d) %s\n", i+1, opt)
	}
	answer, err := p.ask("Pick a number", current)
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(values) {
		return values[n-1], nil
	}
	return answer, nil
}
