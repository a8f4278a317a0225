package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

type Recommendation struct {
	Identity
	InferenceID        uuid.UUID                    `json:"inference_id" gorm:"type:uuid;not null;index"`
	TreatmentType      TreatmentType                `json:"treatment_type" gorm:"type:varchar(50);not null;index;check:chk_recommendations_treatment_type,treatment_type IN ('chemical','organic','cultural','biological')"`
	Title              string                       `json:"title" gorm:"type:varchar(255);not null"`
	Description        string                       `json:"description" gorm:"type:text;not null"`
	Products           datatypes.JSONSlice[Product] `json:"products,omitempty"`
	Priority           int                          `json:"priority" gorm:"not null;default:1;index;check:chk_recommendations_priority_range,priority BETWEEN 1 AND 3"`
	EstimatedCostRange string                       `json:"estimated_cost_range,omitempty" gorm:"type:varchar(50)"`
	ApplicationMethod  string                       `json:"application_method,omitempty" gorm:"type:text"`
	Precautions        string                       `json:"precautions,omitempty" gorm:"type:text"`
	CreatedAt          time.Time                    `json:"created_at" gorm:"not null"`

	Inference *ImageInference `json:"inference,omitempty" gorm:"foreignKey:InferenceID"`
}

func (Recommendation) TableName() string { return "recommendations" }

func (r *Recommendation) ApplyDefaults(time.Time) {
	if r.Priority == 0 {
		r.Priority = PriorityHigh
	}
}

func (r *Recommendation) Validate() error {
	c := newChecks("recommendation")
	c.required("inference_id", r.InferenceID == uuid.Nil)
	c.oneOf("treatment_type", r.TreatmentType)
	c.text("title", r.Title, 255, true)
	c.text("description", r.Description, 0, true)
	for n, p := range r.Products {
		c.required(fmt.Sprintf("products[%d].name", n), p.Name == "")
	}
	c.intBetween("priority", r.Priority, PriorityHigh, PriorityLow)
	c.text("estimated_cost_range", r.EstimatedCostRange, 50, false)
	return c.err()
}

func (r Recommendation) String() string {
	return fmt.Sprintf("<Recommendation id=%s treatment_type=%s priority=%d>", r.ID, r.TreatmentType, r.Priority)
}
