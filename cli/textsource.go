package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// TextSource produces task text from user intent. Next returns io.EOF once
// the source is exhausted.
type TextSource interface {
	Next(ctx context.Context) (string, error)
}

// ArgsSource yields the joined command arguments once.
type ArgsSource struct {
	text string
	done bool
}

func NewArgsSource(args []string) *ArgsSource {
	return &ArgsSource{text: strings.Join(args, " ")}
}

func (s *ArgsSource) Next(context.Context) (string, error) {
	if s.done {
		return "", io.EOF
	}
	s.done = true
	return s.text, nil
}

// LineSource yields one non-blank line at a time, e.g. the transcript a
// speech-to-text tool writes to stdout.
type LineSource struct {
	sc *bufio.Scanner
}

func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{sc: bufio.NewScanner(r)}
}

func (s *LineSource) Next(ctx context.Context) (string, error) {
	for s.sc.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if line := strings.TrimSpace(s.sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
