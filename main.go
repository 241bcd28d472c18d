package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/miketth/kb/pkg/config"
	"codeberg.org/miketth/kb/pkg/kb"
	"codeberg.org/miketth/kb/pkg/layoutstate/file"
	"codeberg.org/miketth/kb/pkg/notify"
	"codeberg.org/miketth/kb/pkg/setxkbmap"
	"codeberg.org/miketth/kb/pkg/xkblayouts"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var version = "1.2.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newCommand(defaultDeps()).Run(ctx, os.Args)
	if err != nil {
		stop()
		log.Fatalf("error: %+v", err)
	}
}

type deps struct {
	stdout     io.Writer
	stderr     io.Writer
	lookupEnv  config.LookupEnv
	useJournal func() bool

	newBackend  func(cfg *config.Config, log *zap.SugaredLogger) kb.LayoutBackend
	newNotifier func(cfg *config.Config) kb.Notifier
}

func defaultDeps() deps {
	return deps{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		lookupEnv:  os.LookupEnv,
		useJournal: journalWanted,
		newBackend: func(cfg *config.Config, log *zap.SugaredLogger) kb.LayoutBackend {
			return setxkbmap.New(cfg.QueryCommand, cfg.SetCommand, log)
		},
		newNotifier: func(cfg *config.Config) kb.Notifier {
			if cfg.NotifyDisabled {
				return notify.Nop{}
			}
			return notify.New(cfg.NotifyTimeout)
		},
	}
}

func newCommand(d deps) *cli.Command {
	return &cli.Command{
		Name:                   "kb",
		Usage:                  "Manage your keyboard layouts easily with setxkbmap.",
		Version:                version,
		UseShortOptionHandling: true,
		Writer:                 d.stdout,
		ErrWriter:              d.stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "get",
				Aliases: []string{"g"},
				Usage:   "Get the current keyboard layout",
			},
			&cli.StringFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "Set the keyboard layout to a given `LAYOUT`",
			},
			&cli.BoolFlag{
				Name:    "next",
				Aliases: []string{"n"},
				Usage: "Set the current keyboard layout to the next layout available. " +
					"Read the LAYOUTS environment variable. Values must be comma separated, such as 'us,fr'.",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Disable desktop notifications",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List the configured layouts, marking the active one",
			},
			&cli.StringFlag{
				Name:      "config",
				Usage:     "Read configuration from `FILE` instead of $XDG_CONFIG_HOME/kb/config.yaml",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runAction(cmd, d)
		},
	}
}

func runAction(cmd *cli.Command, d deps) error {
	log := newLogger(cmd.Bool("debug"), d.stderr, d.useJournal())
	defer func() { _ = log.Sync() }()

	configPath := cmd.String("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(configPath, d.lookupEnv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.File != "" {
		log.Debugw("loaded config file", "path", cfg.File)
	}

	quiet := cmd.Bool("quiet")

	var registry *xkblayouts.XkbConfigRegistry
	if cmd.Bool("list") || (!quiet && (cmd.IsSet("set") || cmd.Bool("next"))) {
		registry = loadRegistry(cfg.EvdevXMLPath, log)
	}

	var describer kb.LayoutDescriber
	if registry != nil {
		describer = registry
	}

	controller := kb.NewController(
		cfg.Layouts,
		d.newBackend(cfg, log),
		file.NewLayoutStore(cfg.StatePath),
		d.newNotifier(cfg),
		describer,
		log,
	)

	switch {
	case cmd.Bool("get"):
		return printCurrent(controller, d.stdout)

	case cmd.IsSet("set"):
		layout := cmd.String("set")
		if registry != nil && !registry.HasLayout(layout) {
			log.Warnw("layout is not in the xkb registry", "layout", layout)
		}
		if err := controller.Set(layout, quiet); err != nil {
			return fmt.Errorf("set layout: %w", err)
		}
		return nil

	case cmd.Bool("next"):
		layout, err := controller.Next(quiet)
		if err != nil {
			return fmt.Errorf("next layout: %w", err)
		}
		log.Debugw("switched layout", "layout", layout)
		return nil

	case cmd.Bool("list"):
		return printList(controller, d.stdout)
	}

	return printCurrent(controller, d.stdout)
}

func printCurrent(controller *kb.Controller, w io.Writer) error {
	layout, err := controller.Current()
	if err != nil {
		return fmt.Errorf("get layout: %w", err)
	}

	_, err = fmt.Fprintln(w, layout)
	return err
}

func printList(controller *kb.Controller, w io.Writer) error {
	for _, l := range controller.List() {
		marker := " "
		if l.Active {
			marker = "*"
		}

		line := fmt.Sprintf("%s %s", marker, l.Code)
		if l.Description != "" {
			line = fmt.Sprintf("%s\t%s", line, l.Description)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func loadRegistry(path string, log *zap.SugaredLogger) *xkblayouts.XkbConfigRegistry {
	registry, err := xkblayouts.ParseLayouts(path)
	if err != nil {
		log.Debugw("layout descriptions unavailable", "path", path, "error", err)
		return nil
	}
	return registry
}
