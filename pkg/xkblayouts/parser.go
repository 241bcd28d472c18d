package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

func ParseLayouts(path string) (*XkbConfigRegistry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func Decode(r io.Reader) (*XkbConfigRegistry, error) {
	registry := &XkbConfigRegistry{}
	err := xml.NewDecoder(r).Decode(registry)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	registry.byCode = make(map[string]*Layout, len(registry.LayoutList.Layout))
	for i := range registry.LayoutList.Layout {
		l := &registry.LayoutList.Layout[i]
		if _, ok := registry.byCode[l.ConfigItem.Name]; !ok {
			registry.byCode[l.ConfigItem.Name] = l
		}
	}

	return registry, nil
}

// GetLayoutPrettyName returns the description of a layout, or of one of its
// variants when variant is set. Unknown codes yield "". A nil registry knows
// no layouts.
func (r *XkbConfigRegistry) GetLayoutPrettyName(layout, variant string) string {
	if r == nil {
		return ""
	}

	l, ok := r.byCode[layout]
	if !ok {
		return ""
	}

	if variant == "" {
		return l.ConfigItem.Description
	}

	for _, v := range l.VariantList.Variant {
		if v.ConfigItem.Name == variant {
			return v.ConfigItem.Description
		}
	}

	return ""
}

// HasLayout reports whether layout is a known layout code.
func (r *XkbConfigRegistry) HasLayout(layout string) bool {
	if r == nil {
		return false
	}
	_, ok := r.byCode[layout]
	return ok
}
