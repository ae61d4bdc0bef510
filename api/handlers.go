package api

import (
	"github.com/rpupo63/portfolio-site-backend/content"
	"github.com/rpupo63/portfolio-site-backend/ratelimit"
	"github.com/rpupo63/portfolio-site-backend/store"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(repo *content.Repository, fileStore *store.FileStore, limiter *ratelimit.Limiter) *routeHandlers {
	return &routeHandlers{
		contentHandler: newContentHandler(repo),
		intakeHandler:  newIntakeHandler(fileStore, limiter),
		hashHandler:    newHashHandler(),
	}
}
