package domain

import "time"

// User represents a registered requester. Authentication lives in an
// external collaborator; this service only consumes the identity and
// the admin flag, and maintains the lifetime booking counter used as
// a feature by external predictive models.
type User struct {
	ID           int64
	Email        string
	Name         string
	IsAdmin      bool
	BookingCount int
	CreatedAt    time.Time
}
