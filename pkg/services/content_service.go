package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/player"
)

var (
	dataURIRe    = regexp.MustCompile(`^data:([A-Za-z0-9.+-]+/[A-Za-z0-9.+-]+)[;,]`)
	youtubeURLRe = regexp.MustCompile(`^(https|http)://(www\.)?(youtube\.com/watch\?v=|youtu\.be/)`)
	youtubeIDRe  = regexp.MustCompile(`(?:youtu\.be/|watch\?v=)([\w-]+)`)
)

type ContentCatalog interface {
	Add(item domain.ContentItem)
	UpdateSummary(id, summary string)
	Delete(id string)
	GetByID(id string) (domain.ContentItem, bool)
}

type ContentState interface {
	Select(id string)
	ClearSelectionIf(id string) bool
}

// Summarizer produces a description of an item. Failures come back as
// error-flavored summary strings, never as errors, so an item always ends up
// with some summary text attached.
type Summarizer interface {
	Summarize(ctx context.Context, item domain.ContentItem) string
}

type DuckingApplier interface {
	Apply()
}

type PlaybackRunner interface {
	Run(ctx context.Context)
}

// contentService ingests media into the catalog, attaches summaries
// asynchronously, and handles user-driven selection, display and deletion.
type contentService struct {
	catalog    ContentCatalog
	state      ContentState
	summarizer Summarizer
	registry   *player.Registry
	ducking    DuckingApplier
	playback   PlaybackRunner
	eventCh    chan<- domain.Event
	now        func() time.Time
}

func NewContentService(
	catalog ContentCatalog,
	state ContentState,
	summarizer Summarizer,
	registry *player.Registry,
	ducking DuckingApplier,
	playback PlaybackRunner,
	eventCh chan<- domain.Event,
) *contentService {
	return &contentService{
		catalog:    catalog,
		state:      state,
		summarizer: summarizer,
		registry:   registry,
		ducking:    ducking,
		playback:   playback,
		eventCh:    eventCh,
		now:        time.Now,
	}
}

func (s *contentService) AddPhoto(ctx context.Context, name, dataURI string) (domain.ContentItem, error) {
	if err := validateDataURI(dataURI); err != nil {
		return domain.ContentItem{}, fmt.Errorf("photo data: %w", err)
	}
	return s.add(ctx, domain.ContentItem{
		Type:      domain.ContentTypePhoto,
		Name:      name,
		Data:      dataURI,
		Thumbnail: dataURI,
	}), nil
}

func (s *contentService) AddAudio(ctx context.Context, name, dataURI string) (domain.ContentItem, error) {
	if err := validateDataURI(dataURI); err != nil {
		return domain.ContentItem{}, fmt.Errorf("audio data: %w", err)
	}
	return s.add(ctx, domain.ContentItem{
		Type: domain.ContentTypeAudio,
		Name: name,
		Data: dataURI,
	}), nil
}

func (s *contentService) AddYouTube(ctx context.Context, url string) (domain.ContentItem, error) {
	if !youtubeURLRe.MatchString(url) {
		return domain.ContentItem{}, fmt.Errorf("not a valid YouTube video URL: %s", url)
	}

	// Short links and extra query parameters collapse to the canonical
	// watch URL.
	var thumbnail string
	if m := youtubeIDRe.FindStringSubmatch(url); m != nil {
		url = fmt.Sprintf("https://www.youtube.com/watch?v=%s", m[1])
		thumbnail = fmt.Sprintf("https://img.youtube.com/vi/%s/0.jpg", m[1])
	}

	return s.add(ctx, domain.ContentItem{
		Type:      domain.ContentTypeYouTube,
		Name:      "YouTube Video",
		Data:      url,
		Thumbnail: thumbnail,
	}), nil
}

func (s *contentService) AddText(ctx context.Context, name, text string) (domain.ContentItem, error) {
	return s.add(ctx, domain.ContentItem{
		Type: domain.ContentTypeText,
		Name: name,
		Data: text,
	}), nil
}

func (s *contentService) add(ctx context.Context, item domain.ContentItem) domain.ContentItem {
	item.ID = uuid.NewString()
	item.CreatedAt = s.now()

	s.catalog.Add(item)
	s.eventCh <- domain.Event{ItemAdded: &item}

	// Fresh uploads become the selection right away.
	s.state.Select(item.ID)
	s.eventCh <- domain.Event{Selection: &domain.SelectionChange{ContentID: item.ID}}

	go s.summarize(item)

	slog.InfoContext(ctx, "Content ingested", "id", item.ID, "type", item.Type, "name", item.Name)
	return item
}

// summarize attaches the summary exactly once per item, whether the
// summarizer succeeded or produced an error-flavored string.
func (s *contentService) summarize(item domain.ContentItem) {
	summary := s.summarizer.Summarize(context.Background(), item)
	s.catalog.UpdateSummary(item.ID, summary)
	s.eventCh <- domain.Event{Summary: &domain.SummaryUpdate{ContentID: item.ID, Summary: summary}}
}

// Delete removes an item; deleting the selected item clears the selection.
// Unknown ids are a no-op.
func (s *contentService) Delete(ctx context.Context, id string) {
	s.catalog.Delete(id)
	s.eventCh <- domain.Event{ItemDeleted: id}

	if s.state.ClearSelectionIf(id) {
		s.eventCh <- domain.Event{Selection: &domain.SelectionChange{}}
	}
}

// Select records a user-driven selection change.
func (s *contentService) Select(ctx context.Context, id string) error {
	if id != "" {
		if _, ok := s.catalog.GetByID(id); !ok {
			return domain.ErrNotFound
		}
	}
	s.state.Select(id)
	s.eventCh <- domain.Event{Selection: &domain.SelectionChange{ContentID: id}}
	return nil
}

// Displayed is the client's report that an item's detail view is now shown.
// Its surfaces get registered, the current ducking level applied, and any
// pending media command gets another chance to dispatch.
func (s *contentService) Displayed(ctx context.Context, id string) error {
	if id == "" {
		s.registry.Clear()
		return nil
	}

	item, ok := s.catalog.GetByID(id)
	if !ok {
		return domain.ErrNotFound
	}

	s.registry.Display(item)
	s.ducking.Apply()
	s.playback.Run(ctx)
	return nil
}

func validateDataURI(dataURI string) error {
	m := dataURIRe.FindStringSubmatch(dataURI)
	if m == nil {
		return fmt.Errorf("not a valid data URI")
	}
	if m[1] == "" {
		return fmt.Errorf("data URI has no MIME type")
	}
	return nil
}
