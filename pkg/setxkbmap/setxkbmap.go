package setxkbmap

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"codeberg.org/miketth/kb/pkg/kb"
	"go.uber.org/zap"
)

var ErrEmptyCommand = errors.New("empty command")

var (
	DefaultQueryCommand = []string{"setxkbmap", "-query"}
	DefaultSetCommand   = []string{"setxkbmap"}
)

// Setxkbmap queries and sets the X keyboard layout by running setxkbmap.
// The layout to set is appended to SetCommand as its last argument.
type Setxkbmap struct {
	QueryCommand []string
	SetCommand   []string

	log *zap.SugaredLogger
}

func New(queryCommand, setCommand []string, log *zap.SugaredLogger) *Setxkbmap {
	if len(queryCommand) == 0 {
		queryCommand = DefaultQueryCommand
	}
	if len(setCommand) == 0 {
		setCommand = DefaultSetCommand
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Setxkbmap{
		QueryCommand: queryCommand,
		SetCommand:   setCommand,
		log:          log,
	}
}

// runCommand runs argv and returns its stdout. There is no timeout.
func (s *Setxkbmap) runCommand(argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", &kb.ExternalToolError{ExitCode: -1, Err: ErrEmptyCommand}
	}

	var stdout, stderr bytes.Buffer

	cmdline := strings.Join(argv, " ")
	s.log.Debugw("running command", "command", cmdline)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		toolErr := &kb.ExternalToolError{
			Command:  cmdline,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
		}

		return "", toolErr
	}

	return stdout.String(), nil
}

func (s *Setxkbmap) Query() (string, error) {
	out, err := s.runCommand(s.QueryCommand...)
	if err != nil {
		return "", err
	}

	layout, err := ParseQuery(out)
	if err != nil {
		return "", fmt.Errorf("parse %q output: %w", strings.Join(s.QueryCommand, " "), err)
	}

	return layout, nil
}

func (s *Setxkbmap) Apply(layout string) error {
	if len(s.SetCommand) == 0 {
		return &kb.ExternalToolError{ExitCode: -1, Err: ErrEmptyCommand}
	}

	argv := make([]string, 0, len(s.SetCommand)+1)
	argv = append(argv, s.SetCommand...)
	argv = append(argv, layout)

	_, err := s.runCommand(argv...)
	return err
}
