package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage represents an accepted contact-form submission.
type ContactMessage struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
	RemoteAddr string    `json:"remoteAddr"`
	UserAgent  string    `json:"userAgent,omitempty"`
}

// Subscriber represents an accepted mailing-list subscription.
type Subscriber struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	RemoteAddr   string    `json:"remoteAddr"`
	UserAgent    string    `json:"userAgent,omitempty"`
}
