package domain

import "errors"

var (
	// ErrNotFound is returned by lookups for ids that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedReply marks a model reply that failed output-schema
	// validation; distinct from transport failures for diagnostics.
	ErrMalformedReply = errors.New("malformed model reply")

	// ErrTurnInFlight is returned when a turn is started while another one
	// has not completed yet.
	ErrTurnInFlight = errors.New("a conversation turn is already in flight")

	// ErrAlreadyListening is returned when voice capture is started twice.
	ErrAlreadyListening = errors.New("voice capture already active")
)
