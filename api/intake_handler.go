package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/ratelimit"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"github.com/rpupo63/portfolio-site-backend/store"
)

const (
	messagesCollection    = "messages"
	subscribersCollection = "subscribers"
)

var contactSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "name", Type: schema.TypeString, Required: true, MinLen: 1, MaxLen: 100},
		{Name: "email", Type: schema.TypeString, Required: true, MaxLen: 200, Email: true},
		{Name: "subject", Type: schema.TypeString, Required: true, MinLen: 1, MaxLen: 150},
		{Name: "message", Type: schema.TypeString, Required: true, MinLen: 10, MaxLen: 5000},
	},
}

var subscribeSchema = schema.Schema{
	Fields: []schema.Field{
		{Name: "email", Type: schema.TypeString, Required: true, MaxLen: 200, Email: true},
	},
}

type intakeHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     *store.FileStore
	limiter   *ratelimit.Limiter
}

func newIntakeHandler(fileStore *store.FileStore, limiter *ratelimit.Limiter) intakeHandler {
	logger := loggerFor("intakeHandler")

	return intakeHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     fileStore,
		limiter:   limiter,
	}
}

// submitContact validates a contact-form payload, applies the per-client rate
// limit, and appends the accepted message to the messages store.
func (h intakeHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !h.limiter.Allow(key, time.Now()) {
			h.logger.Warn().Str("client", key).Msg("Contact submission rate limited")
			h.responder.WriteError(w, errs.NewRateLimitedError(h.limiter.Window()))
			return
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("contact", err))
			return
		}

		normalized, vErr := contactSchema.Validate(payload)
		if vErr != nil {
			h.responder.WriteError(w, vErr)
			return
		}

		message := models.ContactMessage{
			ID:         uuid.New(),
			Name:       normalized["name"].(string),
			Email:      normalized["email"].(string),
			Subject:    normalized["subject"].(string),
			Message:    normalized["message"].(string),
			ReceivedAt: time.Now().UTC(),
			RemoteAddr: key,
			UserAgent:  r.UserAgent(),
		}

		if err := h.store.Append(messagesCollection, message); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("id", message.ID.String()).Msg("Contact message stored")
		h.responder.WriteJSON(w, map[string]string{"status": "ok"})
	}
}

// subscribe validates an email and appends a subscriber record. Submitting an
// already-subscribed email (case-insensitive) succeeds without creating a
// duplicate record.
func (h intakeHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("subscribe", err))
			return
		}

		normalized, vErr := subscribeSchema.Validate(payload)
		if vErr != nil {
			h.responder.WriteError(w, vErr)
			return
		}
		email := normalized["email"].(string)

		var existing []models.Subscriber
		if err := h.store.Load(subscribersCollection, &existing); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		for _, sub := range existing {
			if strings.EqualFold(sub.Email, email) {
				h.responder.WriteJSON(w, map[string]string{"status": "ok"})
				return
			}
		}

		subscriber := models.Subscriber{
			ID:           uuid.New(),
			Email:        email,
			SubscribedAt: time.Now().UTC(),
			RemoteAddr:   clientKey(r),
			UserAgent:    r.UserAgent(),
		}

		if err := h.store.Append(subscribersCollection, subscriber); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("id", subscriber.ID.String()).Msg("Subscriber stored")
		h.responder.WriteJSON(w, map[string]string{"status": "ok"})
	}
}

// clientKey identifies the submitting client for rate limiting: the first
// X-Forwarded-For hop when present, else the remote address host. Clients
// with no identifiable address share the limiter's sentinel bucket.
func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return ratelimit.UnknownKey
}
