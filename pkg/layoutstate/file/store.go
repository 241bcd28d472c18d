package file

import (
	"fmt"
	"os"

	"codeberg.org/miketth/kb/pkg/kb"
)

// PathResolver returns the state file path, or an error wrapping
// kb.ErrConfig when it cannot be determined.
type PathResolver func() (string, error)

// LayoutStore writes the last set layout to a plain text file. The file
// holds exactly the layout bytes, without a trailing newline.
type LayoutStore struct {
	resolve PathResolver
}

func NewLayoutStore(resolve PathResolver) *LayoutStore {
	return &LayoutStore{resolve: resolve}
}

// NewLayoutStoreAt writes to a fixed path.
func NewLayoutStoreAt(path string) *LayoutStore {
	return NewLayoutStore(func() (string, error) {
		if path == "" {
			return "", fmt.Errorf("%w: state file path is empty", kb.ErrConfig)
		}
		return path, nil
	})
}

func (s *LayoutStore) Target() (string, error) {
	return s.resolve()
}

func (s *LayoutStore) WriteLayout(layout string) error {
	path, err := s.resolve()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", kb.ErrIO, path, err)
	}

	_, err = file.WriteString(layout)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: write %s: %w", kb.ErrIO, path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", kb.ErrIO, path, err)
	}

	return nil
}
