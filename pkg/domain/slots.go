package domain

// Persisted state slot names. Each slot is saved whole whenever its part of
// the state changes and loaded once at startup.
const (
	SlotContentItems    = "content_items"
	SlotChatMessages    = "chat_messages"
	SlotSelectedContent = "selected_content"
)

// Ducking reason tags.
const (
	DuckReasonRecording = "recording"
	DuckReasonTTS       = "tts"
)
