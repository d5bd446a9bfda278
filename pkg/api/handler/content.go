package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/remihq/remi/pkg/api/response"
	"github.com/remihq/remi/pkg/domain"
)

type ContentProvider interface {
	AddPhoto(ctx context.Context, name, dataURI string) (domain.ContentItem, error)
	AddAudio(ctx context.Context, name, dataURI string) (domain.ContentItem, error)
	AddYouTube(ctx context.Context, url string) (domain.ContentItem, error)
	AddText(ctx context.Context, name, text string) (domain.ContentItem, error)
	Delete(ctx context.Context, id string)
	Select(ctx context.Context, id string) error
	Displayed(ctx context.Context, id string) error
}

type ContentLister interface {
	All() []domain.ContentItem
}

type content struct {
	provider ContentProvider
	lister   ContentLister
	writer   response.JSONResponseWriter
}

func NewContent(provider ContentProvider, lister ContentLister) *content {
	return &content{
		provider: provider,
		lister:   lister,
		writer:   response.JSONResponseWriter{},
	}
}

type addContentRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	DataURI string `json:"dataUri"`
	URL     string `json:"url"`
	Text    string `json:"text"`
}

func (c *content) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		c.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return
	}

	var req addContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var item domain.ContentItem
	var err error
	switch domain.ContentType(req.Type) {
	case domain.ContentTypePhoto:
		item, err = c.provider.AddPhoto(r.Context(), req.Name, req.DataURI)
	case domain.ContentTypeAudio:
		item, err = c.provider.AddAudio(r.Context(), req.Name, req.DataURI)
	case domain.ContentTypeYouTube:
		item, err = c.provider.AddYouTube(r.Context(), req.URL)
	case domain.ContentTypeText:
		item, err = c.provider.AddText(r.Context(), req.Name, req.Text)
	default:
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Unknown content type.")
		return
	}
	if err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, item)
}

func (c *content) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		c.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "GET required.")
		return
	}
	c.writer.WriteSuccessResponse(w, c.lister.All())
}

type contentIDRequest struct {
	ContentID string `json:"contentId"`
}

func (c *content) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeID(w, r)
	if !ok {
		return
	}
	c.provider.Delete(r.Context(), req.ContentID)
	c.writer.WriteSuccessResponse(w, map[string]string{"status": "deleted"})
}

func (c *content) Select(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeID(w, r)
	if !ok {
		return
	}
	if err := c.provider.Select(r.Context(), req.ContentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.writer.WriteErrorResponse(w, http.StatusNotFound, "Content not found.")
			return
		}
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.writer.WriteSuccessResponse(w, map[string]string{"status": "selected"})
}

// Displayed is how a client reports which item its detail view is showing.
// An empty contentId means the detail view is closed.
func (c *content) Displayed(w http.ResponseWriter, r *http.Request) {
	req, ok := c.decodeID(w, r)
	if !ok {
		return
	}
	if err := c.provider.Displayed(r.Context(), req.ContentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.writer.WriteErrorResponse(w, http.StatusNotFound, "Content not found.")
			return
		}
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.writer.WriteSuccessResponse(w, map[string]string{"status": "ok"})
}

func (c *content) decodeID(w http.ResponseWriter, r *http.Request) (contentIDRequest, bool) {
	if r.Method != http.MethodPost {
		c.writer.WriteErrorResponse(w, http.StatusMethodNotAllowed, "POST required.")
		return contentIDRequest{}, false
	}
	var req contentIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return contentIDRequest{}, false
	}
	return req, true
}
