package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ChatHistory struct {
	Identity
	UserID         uuid.UUID                      `json:"user_id" gorm:"type:uuid;not null;index"`
	FieldID        *uuid.UUID                     `json:"field_id,omitempty" gorm:"type:uuid;index"`
	Query          string                         `json:"query" gorm:"type:text;not null"`
	Response       string                         `json:"response" gorm:"type:text;not null"`
	Language       string                         `json:"language" gorm:"type:varchar(10);not null;default:en;index"`
	Confidence     decimal.NullDecimal            `json:"confidence" gorm:"type:numeric(5,2);check:chk_chat_history_confidence_range,confidence IS NULL OR confidence BETWEEN 0 AND 100"`
	Sources        datatypes.JSONSlice[SourceRef] `json:"sources,omitempty"`
	FeedbackRating *int                           `json:"feedback_rating,omitempty" gorm:"check:chk_chat_history_feedback_rating_range,feedback_rating IS NULL OR feedback_rating BETWEEN 1 AND 5"`
	CreatedAt      time.Time                      `json:"created_at" gorm:"not null;index"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Field *Field `json:"field,omitempty" gorm:"foreignKey:FieldID"`
}

// TableName is singular; existing deployments query chat_history.
func (ChatHistory) TableName() string { return "chat_history" }

const (
	MinFeedbackRating = 1
	MaxFeedbackRating = 5
)

func (h *ChatHistory) ApplyDefaults(time.Time) {
	if h.Language == "" {
		h.Language = "en"
	}
}

func (h *ChatHistory) Validate() error {
	c := newChecks("chat_history")
	c.required("user_id", h.UserID == uuid.Nil)
	if h.FieldID != nil && *h.FieldID == uuid.Nil {
		c.fail("field_id", nil, ErrRequired)
	}
	c.text("query", h.Query, 0, true)
	c.text("response", h.Response, 0, true)
	c.text("language", h.Language, 10, true)
	c.nullNumeric("confidence", &h.Confidence, NumericPercent, &zero, &hundred)
	if h.FeedbackRating != nil {
		c.intBetween("feedback_rating", *h.FeedbackRating, MinFeedbackRating, MaxFeedbackRating)
	}
	return c.err()
}

func (h ChatHistory) String() string {
	return fmt.Sprintf("<ChatHistory id=%s user_id=%s language=%s>", h.ID, h.UserID, h.Language)
}
