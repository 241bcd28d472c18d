// Package notify shows short-lived desktop notifications.
package notify

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"codeberg.org/miketth/kb/pkg/kb"
	"github.com/gen2brain/beeep"
)

const (
	DefaultTimeout = 2 * time.Second
	appName        = "kb"
)

// NotifySend shows notifications through the notify-send program.
type NotifySend struct {
	Path    string
	Timeout time.Duration
}

func (n NotifySend) Notify(summary, body string) error {
	path := n.Path
	if path == "" {
		path = "notify-send"
	}

	timeout := n.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var out bytes.Buffer
	cmd := exec.Command(path,
		"-a", appName,
		"-t", strconv.FormatInt(timeout.Milliseconds(), 10),
		summary, body,
	)
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send: %w: %s", err, strings.TrimSpace(out.String()))
	}

	return nil
}

// Beeep shows notifications through github.com/gen2brain/beeep, which talks
// to the notification daemon over D-Bus. It cannot set an expiry.
type Beeep struct{}

func (Beeep) Notify(summary, body string) error {
	if err := beeep.Notify(summary, body, ""); err != nil {
		return fmt.Errorf("beeep: %w", err)
	}
	return nil
}

// Nop drops all notifications.
type Nop struct{}

func (Nop) Notify(string, string) error {
	return nil
}

// New prefers notify-send, which honours timeout, and falls back to beeep.
func New(timeout time.Duration) kb.Notifier {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		return Beeep{}
	}
	return NotifySend{Path: path, Timeout: timeout}
}
