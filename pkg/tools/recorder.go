package tools

import (
	"sync"

	"github.com/remihq/remi/pkg/domain"
)

// Recorder collects the values the model chose through its tool calls during
// one turn. The tools themselves are acknowledgement stubs: invoking them
// mutates nothing but this recorder, and the recorded values are mirrored
// into the structured turn result. Turns never overlap (the turn controller
// gates them), so one recorder per client is enough; Reset runs at the start
// of every turn.
type Recorder struct {
	mu         sync.Mutex
	selectedID string
	command    *domain.MediaCommand
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selectedID = ""
	r.command = nil
}

func (r *Recorder) RecordSelection(contentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selectedID = contentID
}

func (r *Recorder) RecordCommand(cmd domain.MediaCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.command = &cmd
}

// Snapshot returns the recorded selection and command, if any.
func (r *Recorder) Snapshot() (string, *domain.MediaCommand) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.command == nil {
		return r.selectedID, nil
	}
	cmd := *r.command
	return r.selectedID, &cmd
}
