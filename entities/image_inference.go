package entities

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ImageInference struct {
	Identity
	FieldID             uuid.UUID                       `json:"field_id" gorm:"type:uuid;not null;index"`
	UserID              uuid.UUID                       `json:"user_id" gorm:"type:uuid;not null;index"`
	ImageURL            string                          `json:"image_url" gorm:"column:image_url;type:varchar(500);not null"`
	ImageS3Key          string                          `json:"image_s3_key" gorm:"column:image_s3_key;type:varchar(500);not null"`
	Predictions         datatypes.JSONSlice[Prediction] `json:"predictions" gorm:"not null"`
	TopDisease          string                          `json:"top_disease,omitempty" gorm:"type:varchar(100);index"`
	TopConfidence       decimal.NullDecimal             `json:"top_confidence" gorm:"type:numeric(5,2);index;check:chk_image_inferences_top_confidence_range,top_confidence IS NULL OR top_confidence BETWEEN 0 AND 100"`
	InferenceType       InferenceType                   `json:"inference_type" gorm:"type:varchar(20);not null;index;check:chk_image_inferences_inference_type,inference_type IN ('on_device','server')"`
	InferenceDurationMS *int                            `json:"inference_duration_ms,omitempty" gorm:"column:inference_duration_ms;check:chk_image_inferences_inference_duration_ms_range,inference_duration_ms IS NULL OR inference_duration_ms >= 0"`
	ModelVersion        string                          `json:"model_version,omitempty" gorm:"type:varchar(50)"`
	IsFeedbackProvided  bool                            `json:"is_feedback_provided" gorm:"not null;default:false"`
	FeedbackCorrect     *bool                           `json:"feedback_correct,omitempty"`
	CreatedAt           time.Time                       `json:"created_at" gorm:"not null;index"`

	Field           *Field           `json:"field,omitempty" gorm:"foreignKey:FieldID"`
	User            *User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Recommendations []Recommendation `json:"recommendations,omitempty" gorm:"foreignKey:InferenceID;constraint:OnDelete:CASCADE"`
}

func (ImageInference) TableName() string { return "image_inferences" }

// RankPredictions orders predictions by descending confidence and fills the
// top disease summary when the caller did not provide one.
func (i *ImageInference) RankPredictions() {
	sort.SliceStable(i.Predictions, func(a, b int) bool {
		return i.Predictions[a].Confidence.GreaterThan(i.Predictions[b].Confidence)
	})
	if len(i.Predictions) == 0 || i.TopDisease != "" {
		return
	}
	top := i.Predictions[0]
	i.TopDisease = top.Disease
	i.TopConfidence = decimal.NewNullDecimal(top.Confidence)
}

func (i *ImageInference) Validate() error {
	c := newChecks("image_inference")
	c.required("field_id", i.FieldID == uuid.Nil)
	c.required("user_id", i.UserID == uuid.Nil)
	c.text("image_url", i.ImageURL, 500, true)
	c.text("image_s3_key", i.ImageS3Key, 500, true)
	c.required("predictions", len(i.Predictions) == 0)
	for n := range i.Predictions {
		p := &i.Predictions[n]
		col := fmt.Sprintf("predictions[%d]", n)
		c.required(col+".disease", strings.TrimSpace(p.Disease) == "")
		c.numeric(col+".confidence", &p.Confidence, NumericPercent, &zero, &hundred)
		if p.Severity != "" && !p.Severity.Valid() {
			c.fail(col+".severity", p.Severity.String(), ErrInvalidEnum)
		}
	}
	c.text("top_disease", i.TopDisease, 100, false)
	c.nullNumeric("top_confidence", &i.TopConfidence, NumericPercent, &zero, &hundred)
	c.oneOf("inference_type", i.InferenceType)
	if i.InferenceDurationMS != nil && *i.InferenceDurationMS < 0 {
		c.fail("inference_duration_ms", *i.InferenceDurationMS, ErrOutOfRange)
	}
	c.text("model_version", i.ModelVersion, 50, false)
	if i.FeedbackCorrect != nil && !i.IsFeedbackProvided {
		c.fail("feedback_correct", *i.FeedbackCorrect, ErrOutOfRange)
	}
	return c.err()
}

func (i ImageInference) String() string {
	conf := "-"
	if i.TopConfidence.Valid {
		conf = i.TopConfidence.Decimal.String()
	}
	return fmt.Sprintf("<ImageInference id=%s top_disease=%s confidence=%s>", i.ID, i.TopDisease, conf)
}
