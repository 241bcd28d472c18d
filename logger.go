package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

const syslogIdentifier = "kb"

func newLogger(debug bool, w io.Writer, toJournal bool) *zap.SugaredLogger {
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	// stdout is reserved for command output
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(loggerConfig.EncoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		loggerConfig.Level,
	)
	if toJournal {
		core = zapcore.NewTee(core, &journalCore{LevelEnabler: loggerConfig.Level})
	}

	return zap.New(core, zap.Development()).Sugar()
}

// journalWanted is true when kb runs without a terminal, e.g. from a window
// manager key binding, and journald is reachable.
func journalWanted() bool {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return false
	}
	return journal.Enabled()
}

// journalCore sends log entries to the systemd journal.
type journalCore struct {
	zapcore.LevelEnabler
	fields []zapcore.Field
}

func (c *journalCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(c.fields[:len(c.fields):len(c.fields)], fields...)
	return &clone
}

func (c *journalCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *journalCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	vars := map[string]string{"SYSLOG_IDENTIFIER": syslogIdentifier}
	for k, v := range enc.Fields {
		vars[journalField(k)] = fmt.Sprint(v)
	}

	if err := journal.Send(ent.Message, journalPriority(ent.Level), vars); err != nil {
		return fmt.Errorf("journal send: %w", err)
	}
	return nil
}

func (c *journalCore) Sync() error {
	return nil
}

// journalField turns a zap key into a valid journal field name.
func journalField(key string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, key)
	return "KB_" + name
}

func journalPriority(level zapcore.Level) journal.Priority {
	switch level {
	case zapcore.DebugLevel:
		return journal.PriDebug
	case zapcore.InfoLevel:
		return journal.PriInfo
	case zapcore.WarnLevel:
		return journal.PriWarning
	case zapcore.ErrorLevel:
		return journal.PriErr
	default:
		return journal.PriCrit
	}
}
