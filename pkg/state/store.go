package state

import (
	"sync"

	"github.com/remihq/remi/pkg/domain"
)

// Store owns the two pieces of shared mutable state outside the catalog: the
// current selection and the single pending media command slot. All mutations
// are read-modify-write sequences under one mutex, which is what makes the
// supersession check in ClearPendingIf sound with delayed dispatches running
// on their own goroutines.
type Store struct {
	mu         sync.Mutex
	selectedID string
	pending    *domain.MediaCommand
}

func NewStore() *Store {
	return &Store{}
}

// Select sets the current selection; an empty id clears it.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedID = id
}

func (s *Store) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selectedID, s.selectedID != ""
}

// ClearSelectionIf clears the selection only if it currently points at id.
// Used when the selected item is deleted.
func (s *Store) ClearSelectionIf(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.selectedID == id {
		s.selectedID = ""
		return true
	}
	return false
}

// SetPending overwrites the pending command slot, last write wins.
func (s *Store) SetPending(cmd domain.MediaCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = &cmd
}

func (s *Store) Pending() (domain.MediaCommand, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return domain.MediaCommand{}, false
	}
	return *s.pending, true
}

// ClearPendingIf clears the pending slot only if it still holds a command
// with the same identity as cmd. A delayed dispatch captured cmd at schedule
// time; if a newer command has since overwritten the slot, the clear is
// suppressed.
func (s *Store) ClearPendingIf(cmd domain.MediaCommand) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil && s.pending.SameIdentity(cmd) {
		s.pending = nil
		return true
	}
	return false
}
