package in

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"timeline/internal/modules/schedule/dto"
	apperrors "timeline/internal/platform/errors"
	"timeline/internal/platform/log"
)

const (
	addPrompt     = "Add event:"
	confirmPrompt = "(y/n)"
	addedMessage  = "Adding success."
)

type stagePort interface {
	Stage(ctx context.Context, command string) (dto.PendingOutput, error)
	Commit(ctx context.Context, pending dto.PendingOutput) (dto.CommitOutput, error)
}

// Shell is the line-oriented add loop. Each command is staged, echoed
// back and only committed after an explicit "y".
type Shell struct {
	port stagePort
	in   *bufio.Reader
	out  io.Writer
}

func NewShell(port stagePort, in io.Reader, out io.Writer) *Shell {
	return &Shell{port: port, in: bufio.NewReader(in), out: out}
}

// Run reads commands until empty input, "exit", EOF or ctx is done. Bad
// commands are reported and the loop goes on.
func (s *Shell) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		fmt.Fprint(s.out, addPrompt)
		line, err := readLine(s.in)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		pending, err := s.port.Stage(ctx, line)
		if errors.Is(err, apperrors.ErrTermination) {
			return nil
		}
		if err != nil {
			log.Debug("command rejected", "input", line, "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}

		fmt.Fprintln(s.out, pending.Summary)
		ok, err := Confirm(s.in, s.out)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if _, err := s.port.Commit(ctx, pending); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(s.out, addedMessage)
	}
	return nil
}

// Confirm asks "(y/n)" until the answer is y or n, ignoring case.
func Confirm(in *bufio.Reader, out io.Writer) (bool, error) {
	for {
		fmt.Fprint(out, confirmPrompt)
		answer, err := readLine(in)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

// readLine returns io.EOF only when no text precedes the end of input.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
