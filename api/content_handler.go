package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-site-backend/content"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type contentHandler struct {
	responder Responder
	logger    zerolog.Logger
	repo      *content.Repository
}

func newContentHandler(repo *content.Repository) contentHandler {
	logger := loggerFor("contentHandler")

	return contentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
	}
}

// DocumentCollection represents a category listing.
type DocumentCollection struct {
	Documents []models.DocumentView `json:"documents"`
	Total     int                   `json:"total"`
}

// SlugCollection represents a category's enumerated slugs.
type SlugCollection struct {
	Slugs []string `json:"slugs"`
	Total int      `json:"total"`
}

// listDocuments returns every published document in a category, newest first.
func (h contentHandler) listDocuments(category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := h.repo.List(category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, DocumentCollection{
			Documents: views,
			Total:     len(views),
		})
	}
}

// getDocument returns a single document with its compiled body.
func (h contentHandler) getDocument(category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		doc, err := h.repo.Get(category, slug)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, doc)
	}
}

// listSlugs enumerates every slug in a category, drafts included.
func (h contentHandler) listSlugs(category string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slugs, err := h.repo.Slugs(category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, SlugCollection{
			Slugs: slugs,
			Total: len(slugs),
		})
	}
}
