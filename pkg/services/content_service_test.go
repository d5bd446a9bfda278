package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/player"
	"github.com/remihq/remi/pkg/repository"
	"github.com/remihq/remi/pkg/state"
)

type fakeSummarizer struct {
	mu      sync.Mutex
	summary string
	seen    []domain.ContentItem
}

func (f *fakeSummarizer) Summarize(ctx context.Context, item domain.ContentItem) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, item)
	return f.summary
}

type fakeApplier struct {
	applied int
}

func (f *fakeApplier) Apply() { f.applied++ }

type fakeRunner struct {
	runs int
}

func (f *fakeRunner) Run(ctx context.Context) { f.runs++ }

type contentFixture struct {
	svc      *contentService
	catalog  ContentCatalog
	all      func() []domain.ContentItem
	store    *state.Store
	ducking  *fakeApplier
	playback *fakeRunner
	eventCh  chan domain.Event
}

func newContentFixture(summarizer Summarizer) *contentFixture {
	catalog := repository.NewCatalogRepository()
	store := state.NewStore()
	eventCh := make(chan domain.Event, 64)
	registry := player.NewRegistry(func(domain.Event) {})
	ducking := &fakeApplier{}
	playback := &fakeRunner{}

	svc := NewContentService(catalog, store, summarizer, registry, ducking, playback, eventCh)
	return &contentFixture{
		svc:      svc,
		catalog:  catalog,
		all:      catalog.All,
		store:    store,
		ducking:  ducking,
		playback: playback,
		eventCh:  eventCh,
	}
}

func waitForSummary(t *testing.T, ch chan domain.Event) domain.SummaryUpdate {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if e.Summary != nil {
				return *e.Summary
			}
		case <-deadline:
			t.Fatal("timed out waiting for summary event")
		}
	}
}

func TestAddTextSelectsAndSummarizes(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "a note about birds"}
	f := newContentFixture(summarizer)

	item, err := f.svc.AddText(context.Background(), "Birds", "Crows are corvids.")
	if err != nil {
		t.Fatalf("add text failed: %v", err)
	}
	if item.ID == "" || item.Type != domain.ContentTypeText {
		t.Fatalf("unexpected item %+v", item)
	}
	if selected, _ := f.store.Selected(); selected != item.ID {
		t.Fatalf("expected fresh item selected, got %q", selected)
	}

	update := waitForSummary(t, f.eventCh)
	if update.ContentID != item.ID || update.Summary != "a note about birds" {
		t.Fatalf("unexpected summary update %+v", update)
	}

	stored, ok := f.catalog.GetByID(item.ID)
	if !ok || stored.Summary != "a note about birds" {
		t.Fatalf("expected summary attached in catalog, got %+v", stored)
	}
}

func TestAddPrependsNewestFirst(t *testing.T) {
	f := newContentFixture(&fakeSummarizer{})

	first, _ := f.svc.AddText(context.Background(), "first", "one")
	second, _ := f.svc.AddText(context.Background(), "second", "two")

	items := f.all()
	if len(items) != 2 || items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected newest-first order, got %+v", items)
	}
}

func TestAddPhotoValidation(t *testing.T) {
	tests := []struct {
		name    string
		dataURI string
		valid   bool
	}{
		{"png data uri", "data:image/png;base64,iVBORw0KGgo=", true},
		{"comma separated", "data:image/jpeg,rawdata", true},
		{"plain url", "https://example.com/image.png", false},
		{"missing mime", "data:;base64,abcd", false},
		{"empty", "", false},
	}

	for _, test := range tests {
		f := newContentFixture(&fakeSummarizer{})
		_, err := f.svc.AddPhoto(context.Background(), "pic", test.dataURI)
		if test.valid && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
		if !test.valid && err == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
	}
}

func TestAddYouTube(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		valid     bool
		canonical string
		thumbnail string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://img.youtube.com/vi/dQw4w9WgXcQ/0.jpg"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", true, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://img.youtube.com/vi/dQw4w9WgXcQ/0.jpg"},
		{"http scheme", "http://youtube.com/watch?v=abc123", true, "https://www.youtube.com/watch?v=abc123", "https://img.youtube.com/vi/abc123/0.jpg"},
		{"not youtube", "https://vimeo.com/12345", false, "", ""},
		{"bare channel", "https://www.youtube.com/@somechannel", false, "", ""},
	}

	for _, test := range tests {
		f := newContentFixture(&fakeSummarizer{})
		item, err := f.svc.AddYouTube(context.Background(), test.url)
		if !test.valid {
			if err == nil {
				t.Errorf("%s: expected error", test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if item.Name != "YouTube Video" {
			t.Errorf("%s: unexpected name %q", test.name, item.Name)
		}
		if item.Data != test.canonical {
			t.Errorf("%s: data = %q, expected canonical %q", test.name, item.Data, test.canonical)
		}
		if item.Thumbnail != test.thumbnail {
			t.Errorf("%s: thumbnail = %q, expected %q", test.name, item.Thumbnail, test.thumbnail)
		}
	}
}

func TestDeleteSelectedItemClearsSelection(t *testing.T) {
	f := newContentFixture(&fakeSummarizer{})
	ctx := context.Background()

	item, _ := f.svc.AddText(ctx, "note", "text")
	drainEvents(f.eventCh)

	f.svc.Delete(ctx, item.ID)

	if _, ok := f.store.Selected(); ok {
		t.Fatal("expected selection cleared")
	}
	if _, ok := f.catalog.GetByID(item.ID); ok {
		t.Fatal("expected item removed from catalog")
	}

	var sawDeleted, sawCleared bool
	for _, e := range drainEvents(f.eventCh) {
		if e.ItemDeleted == item.ID {
			sawDeleted = true
		}
		if e.Selection != nil && e.Selection.ContentID == "" {
			sawCleared = true
		}
	}
	if !sawDeleted || !sawCleared {
		t.Fatal("expected deletion and selection-cleared events")
	}
}

func TestDeleteOtherItemKeepsSelection(t *testing.T) {
	f := newContentFixture(&fakeSummarizer{})
	ctx := context.Background()

	first, _ := f.svc.AddText(ctx, "first", "one")
	second, _ := f.svc.AddText(ctx, "second", "two")

	f.svc.Delete(ctx, first.ID)

	if selected, _ := f.store.Selected(); selected != second.ID {
		t.Fatalf("expected selection to stay on %q, got %q", second.ID, selected)
	}
}

func TestSelectUnknownContent(t *testing.T) {
	f := newContentFixture(&fakeSummarizer{})

	if err := f.svc.Select(context.Background(), "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDisplayedRegistersSurfacesAndRetriesPending(t *testing.T) {
	f := newContentFixture(&fakeSummarizer{})
	ctx := context.Background()

	item, _ := f.svc.AddText(ctx, "note", "text")

	if err := f.svc.Displayed(ctx, item.ID); err != nil {
		t.Fatalf("displayed failed: %v", err)
	}
	if f.ducking.applied != 1 {
		t.Fatalf("expected ducking applied once, got %d", f.ducking.applied)
	}
	if f.playback.runs != 1 {
		t.Fatalf("expected playback run once, got %d", f.playback.runs)
	}

	if err := f.svc.Displayed(ctx, ""); err != nil {
		t.Fatalf("clearing display failed: %v", err)
	}
	if f.playback.runs != 1 {
		t.Fatal("expected no playback run when display clears")
	}

	if err := f.svc.Displayed(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummaryErrorStringStillAttached(t *testing.T) {
	summarizer := &fakeSummarizer{summary: "Error generating summary. Details: model unavailable"}
	f := newContentFixture(summarizer)

	item, err := f.svc.AddText(context.Background(), "note", "text")
	if err != nil {
		t.Fatalf("add text failed: %v", err)
	}

	update := waitForSummary(t, f.eventCh)
	if !strings.HasPrefix(update.Summary, "Error generating summary.") {
		t.Fatalf("unexpected summary %q", update.Summary)
	}
	stored, _ := f.catalog.GetByID(item.ID)
	if stored.Summary != update.Summary {
		t.Fatalf("expected catalog to carry the error summary, got %q", stored.Summary)
	}
}
