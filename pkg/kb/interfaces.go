package kb

// LayoutBackend queries and changes the layout of the running display.
type LayoutBackend interface {
	Query() (string, error)
	Apply(layout string) error
}

// LayoutStateWriter records the last layout set by kb.
type LayoutStateWriter interface {
	// Target returns where the layout will be written. It fails with
	// ErrConfig when no location can be resolved.
	Target() (string, error)
	WriteLayout(layout string) error
}

type Notifier interface {
	Notify(summary, body string) error
}

// LayoutDescriber maps layout codes to human-readable names.
type LayoutDescriber interface {
	GetLayoutPrettyName(layout, variant string) string
}

// ListedLayout is one entry of Controller.List.
type ListedLayout struct {
	Code        string
	Description string
	Active      bool
}
