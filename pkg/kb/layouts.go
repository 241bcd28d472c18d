package kb

import "strings"

// DefaultLayouts is used when no layout list is configured.
var DefaultLayouts = []string{"us", "fr"}

// SplitLayouts parses a comma separated layout list such as "us,fr".
func SplitLayouts(s string) []string {
	return NormalizeLayouts(strings.Split(s, ","))
}

// NormalizeLayouts drops empty entries and repeated layouts, keeping the
// first occurrence.
func NormalizeLayouts(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
