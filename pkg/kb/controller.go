package kb

import (
	"fmt"

	"go.uber.org/zap"
)

const notificationSummary = "kb"

type Controller struct {
	layouts []string

	backend   LayoutBackend
	state     LayoutStateWriter
	notifier  Notifier
	describer LayoutDescriber

	log *zap.SugaredLogger
}

// NewController creates a controller cycling through layouts. notifier and
// describer may be nil.
func NewController(
	layouts []string,
	backend LayoutBackend,
	state LayoutStateWriter,
	notifier Notifier,
	describer LayoutDescriber,
	log *zap.SugaredLogger,
) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Controller{
		layouts:   layouts,
		backend:   backend,
		state:     state,
		notifier:  notifier,
		describer: describer,
		log:       log,
	}
}

// Layouts returns the configured layout list.
func (c *Controller) Layouts() []string {
	out := make([]string, len(c.layouts))
	copy(out, c.layouts)
	return out
}

func (c *Controller) Current() (string, error) {
	layout, err := c.backend.Query()
	if err != nil {
		return "", fmt.Errorf("query layout: %w", err)
	}

	c.log.Debugw("queried layout", "layout", layout)
	return layout, nil
}

// Set switches to layout and records it in the state file. The state file
// location is resolved before the layout is applied, so a missing location
// leaves the display untouched.
func (c *Controller) Set(layout string, quiet bool) error {
	if layout == "" {
		return fmt.Errorf("%w: layout is empty", ErrInvalidLayout)
	}

	target, err := c.state.Target()
	if err != nil {
		return fmt.Errorf("resolve state file: %w", err)
	}

	if err := c.backend.Apply(layout); err != nil {
		return fmt.Errorf("apply layout %q: %w", layout, err)
	}
	c.log.Debugw("applied layout", "layout", layout)

	if err := c.state.WriteLayout(layout); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	c.log.Debugw("wrote state file", "path", target)

	if !quiet {
		c.notify(layout)
	}

	return nil
}

// Next switches to the layout following the current one, wrapping around
// at the end of the list, and returns it.
func (c *Controller) Next(quiet bool) (string, error) {
	if len(c.layouts) == 0 {
		return "", fmt.Errorf("%w: configured layout list is empty", ErrConfig)
	}

	current, err := c.Current()
	if err != nil {
		return "", err
	}

	idx := indexOf(c.layouts, current)
	if idx < 0 {
		return "", fmt.Errorf("%w: current layout %q is not one of %v", ErrNotFound, current, c.layouts)
	}

	next := c.layouts[(idx+1)%len(c.layouts)]
	if err := c.Set(next, quiet); err != nil {
		return "", err
	}

	return next, nil
}

// List describes the configured layouts. If the current layout cannot be
// queried no entry is marked active.
func (c *Controller) List() []ListedLayout {
	current, err := c.Current()
	if err != nil {
		c.log.Warnw("could not query current layout", "error", err)
	}

	out := make([]ListedLayout, 0, len(c.layouts))
	for _, l := range c.layouts {
		out = append(out, ListedLayout{
			Code:        l,
			Description: c.describe(l),
			Active:      err == nil && l == current,
		})
	}

	return out
}

func (c *Controller) notify(layout string) {
	if c.notifier == nil {
		return
	}

	body := fmt.Sprintf("Keyboard layout set to '%s'", layout)
	if desc := c.describe(layout); desc != "" {
		body = fmt.Sprintf("%s (%s)", body, desc)
	}

	if err := c.notifier.Notify(notificationSummary, body); err != nil {
		c.log.Warnw("could not show notification", "error", err)
	}
}

func (c *Controller) describe(layout string) string {
	if c.describer == nil {
		return ""
	}
	return c.describer.GetLayoutPrettyName(layout, "")
}

func indexOf(layouts []string, layout string) int {
	for i, l := range layouts {
		if l == layout {
			return i
		}
	}
	return -1
}
