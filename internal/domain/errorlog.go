package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorLog is a persisted record of a server-side failure, written
// opportunistically. Failures to write it are logged and never surfaced.
type ErrorLog struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	OwnerID   string    `db:"owner_id"   json:"owner_id"`
	Source    string    `db:"source"     json:"source"`
	Message   string    `db:"message"    json:"message"`
	Detail    string    `db:"detail"     json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
