package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/logger"
)

// Fixed fallback replies. Schema failures and transport failures are distinct
// cases for diagnostics but recover the same way: an apology message and no
// side effects.
const (
	replyMalformed = "Sorry, I had trouble understanding that or putting a response together. Please try again."
	replyFailed    = "Sorry, an unexpected error occurred. Please try again."
)

type TurnClient interface {
	Converse(ctx context.Context, req domain.TurnRequest) (domain.TurnResult, error)
}

type TurnCatalog interface {
	All() []domain.ContentItem
	GetByID(id string) (domain.ContentItem, bool)
}

type TurnChatLog interface {
	Append(msg domain.ChatMessage)
}

type TurnState interface {
	Selected() (string, bool)
	Select(id string)
	SetPending(cmd domain.MediaCommand)
}

// turnService runs one conversational exchange per call: it snapshots the
// catalog and selection, invokes the model and translates the structured
// result into message, selection and media-command events. The in-flight
// mutex is the concurrency gate; a second call while a turn runs is rejected
// so the selection snapshot cannot be corrupted mid-turn.
type turnService struct {
	inFlight sync.Mutex
	client   TurnClient
	catalog  TurnCatalog
	chatLog  TurnChatLog
	state    TurnState
	eventCh  chan<- domain.Event
	now      func() time.Time
}

func NewTurnService(
	client TurnClient,
	catalog TurnCatalog,
	chatLog TurnChatLog,
	state TurnState,
	eventCh chan<- domain.Event,
) *turnService {
	return &turnService{
		client:  client,
		catalog: catalog,
		chatLog: chatLog,
		state:   state,
		eventCh: eventCh,
		now:     time.Now,
	}
}

// Execute runs one turn for the given user utterance. Collaborator failures
// never escape: they resolve to an apology message. The only errors returned
// are precondition failures (empty message, turn already in flight).
func (t *turnService) Execute(ctx context.Context, userText string) error {
	if userText == "" {
		return errors.New("empty user message")
	}
	if !t.inFlight.TryLock() {
		return domain.ErrTurnInFlight
	}
	defer t.inFlight.Unlock()

	t.appendMessage(domain.SenderUser, userText)

	selectedBefore, _ := t.state.Selected()
	req := t.buildRequest(userText, selectedBefore)

	slog.InfoContext(ctx, "Running conversation turn",
		"itemCount", len(req.AvailableContent),
		"selected", selectedBefore,
	)

	res, err := t.client.Converse(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedReply) {
			slog.WarnContext(ctx, "Model reply failed schema validation", logger.Err(err))
			t.appendMessage(domain.SenderAI, replyMalformed)
			return nil
		}
		slog.ErrorContext(ctx, "Conversation turn failed", logger.Err(err))
		t.appendMessage(domain.SenderAI, replyFailed)
		return nil
	}

	if err := t.validateResult(res); err != nil {
		slog.WarnContext(ctx, "Model reply failed schema validation", logger.Err(err))
		t.appendMessage(domain.SenderAI, replyMalformed)
		return nil
	}

	// The assistant message always goes out before selection and command
	// effects.
	t.appendMessage(domain.SenderAI, res.AIResponse)

	if res.SelectedContentID != "" {
		t.selectContent(res.SelectedContentID)
	}

	if cmd := res.MediaCommand; cmd != nil {
		// Selection must end up pointing at the item being controlled. The
		// extra update is skipped only when the assistant already selected
		// exactly that item this turn.
		if cmd.ContentID != selectedBefore {
			if res.SelectedContentID == "" || res.SelectedContentID != cmd.ContentID {
				t.selectContent(cmd.ContentID)
			}
		}
		t.state.SetPending(*cmd)
		t.eventCh <- domain.Event{Command: cmd}
	}

	return nil
}

func (t *turnService) buildRequest(userText, selectedID string) domain.TurnRequest {
	items := t.catalog.All()

	req := domain.TurnRequest{
		UserMessage: userText,
		AvailableContent: lo.Map(items, func(item domain.ContentItem, _ int) domain.ContentInfo {
			return item.Info()
		}),
	}

	if selectedID != "" {
		if item, ok := t.catalog.GetByID(selectedID); ok {
			info := item.Info()
			req.SelectedItem = &info
		}
	}
	return req
}

func (t *turnService) validateResult(res domain.TurnResult) error {
	if res.AIResponse == "" {
		return fmt.Errorf("%w: missing aiResponse", domain.ErrMalformedReply)
	}

	if res.SelectedContentID != "" {
		if _, ok := t.catalog.GetByID(res.SelectedContentID); !ok {
			return fmt.Errorf("%w: selected content %q does not exist", domain.ErrMalformedReply, res.SelectedContentID)
		}
	}

	if cmd := res.MediaCommand; cmd != nil {
		if !cmd.MediaType.Valid() {
			return fmt.Errorf("%w: unknown media type %q", domain.ErrMalformedReply, cmd.MediaType)
		}
		if !cmd.Command.Valid() {
			return fmt.Errorf("%w: unknown playback command %q", domain.ErrMalformedReply, cmd.Command)
		}
		item, ok := t.catalog.GetByID(cmd.ContentID)
		if !ok {
			return fmt.Errorf("%w: command target %q does not exist", domain.ErrMalformedReply, cmd.ContentID)
		}
		if item.Type != cmd.MediaType.ContentType() {
			return fmt.Errorf("%w: command media type %q does not match item type %q",
				domain.ErrMalformedReply, cmd.MediaType, item.Type)
		}
	}
	return nil
}

func (t *turnService) appendMessage(sender, text string) {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: t.now(),
	}
	t.chatLog.Append(msg)
	t.eventCh <- domain.Event{Message: &msg}
}

func (t *turnService) selectContent(id string) {
	t.state.Select(id)
	t.eventCh <- domain.Event{Selection: &domain.SelectionChange{ContentID: id}}
}
