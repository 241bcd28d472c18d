package setxkbmap

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/kb/pkg/kb"
)

const layoutMarker = "layout"

// ParseQuery extracts the active layout from `setxkbmap -query` output:
//
//	rules:      evdev
//	model:      pc105
//	layout:     us
//
// The last line mentioning "layout" wins, and its last field is the code.
func ParseQuery(output string) (string, error) {
	layout := ""
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, layoutMarker) {
			continue
		}

		fields := strings.Fields(line)
		layout = fields[len(fields)-1]
	}

	if layout == "" {
		return "", fmt.Errorf("%w: no %q line", kb.ErrParse, layoutMarker)
	}

	return layout, nil
}
