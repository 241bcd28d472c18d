package memory

import "sync"

// LayoutStore keeps the last written layout in memory.
type LayoutStore struct {
	lock     sync.Mutex
	layout   string
	writes   int
	target   string
	failErr  error
	writeErr error
}

func NewLayoutStore() *LayoutStore {
	return &LayoutStore{target: "memory"}
}

// FailWith makes every later call return err.
func (s *LayoutStore) FailWith(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failErr = err
}

// FailWritesWith makes later writes return err while Target still
// succeeds.
func (s *LayoutStore) FailWritesWith(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.writeErr = err
}

func (s *LayoutStore) Target() (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.failErr != nil {
		return "", s.failErr
	}
	return s.target, nil
}

func (s *LayoutStore) WriteLayout(layout string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	s.layout = layout
	s.writes++
	return nil
}

// Layout returns the last written layout and how many writes happened.
func (s *LayoutStore) Layout() (string, int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.layout, s.writes
}
