package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers line by line and re-asks until a value validates.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints label and returns the next line without its terminator.
// io.EOF is returned once input is exhausted.
func (p *Prompter) Line(label string) (string, error) {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prints label once and keeps reading until parse accepts a line.
// Each rejection is reported as "Error! <reason>. Please try again: ".
func Ask[T any](p *Prompter, label string, parse func(string) (T, error)) (T, error) {
	msg := label
	for {
		line, err := p.Line(msg)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		msg = fmt.Sprintf("Error! %s. Please try again: ", err)
	}
}
