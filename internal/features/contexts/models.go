package contexts

import (
	"time"

	"github.com/google/uuid"
)

// ExecutionContext is the caller identity carried by a context token.
type ExecutionContext struct {
	ID       uuid.UUID   `json:"id"`
	Kind     ContextKind `json:"kind"`
	Origin   string      `json:"origin"`
	IssuedAt time.Time   `json:"issuedAt"`
}
