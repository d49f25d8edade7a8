package domain

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeRendered    Outcome = "rendered"
	OutcomeUnknownTool Outcome = "unknown_tool"
	OutcomeInvalid     Outcome = "invalid_input"
	OutcomeFailed      Outcome = "render_failed"
)

// Call is one dispatched tool invocation as kept in the call history.
type Call struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Tool       string    `gorm:"index"`
	Outcome    Outcome   `gorm:"type:text"`
	Arguments  string    // normalized arguments as JSON, raw arguments when rejected
	Violations string    // one violation per line
	Duration   time.Duration
	CreatedAt  time.Time `gorm:"index"`
}
