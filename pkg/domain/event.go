package domain

// Event is the single envelope services emit towards the dispatcher. Exactly
// one of the pointer/selector fields is set per event, mirroring how the
// dispatcher fans it out to persistence and to stream subscribers.
type Event struct {
	Message      *ChatMessage     // new chat message appended
	Selection    *SelectionChange // selected content changed
	Command      *MediaCommand    // pending media command queued
	Player       *PlayerInstruction
	ItemAdded    *ContentItem
	ItemDeleted  string
	Summary      *SummaryUpdate
	Transcript   *TranscriptUpdate
	Alert        string // transient user-visible notice
	Err          error  // logged and surfaced as an alert
}

// SelectionChange carries the new selection; an empty ContentID clears it.
type SelectionChange struct {
	ContentID string `json:"contentId"`
}

// PlayerInstruction is a one-way instruction for a client-side surface.
// For youtube surfaces Payload is the embed API postMessage JSON verbatim;
// for audio surfaces Action names the element operation.
type PlayerInstruction struct {
	ContentID string    `json:"contentId"`
	Surface   MediaType `json:"surface"`
	Action    string    `json:"action,omitempty"`
	Payload   string    `json:"payload,omitempty"`
	Volume    int       `json:"volume,omitempty"`
}

type SummaryUpdate struct {
	ContentID string `json:"contentId"`
	Summary   string `json:"summary"`
}

// TranscriptUpdate carries the voice session's accumulated transcript so the
// client can mirror it into the input box while listening.
type TranscriptUpdate struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}
