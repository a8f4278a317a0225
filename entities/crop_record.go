package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CropRecord is one historical season of a field. It has no updated_at:
// updates are allowed but not tracked.
type CropRecord struct {
	Identity
	FieldID      uuid.UUID           `json:"field_id" gorm:"type:uuid;not null;index"`
	CropType     string              `json:"crop_type" gorm:"type:varchar(100);not null;index"`
	Variety      string              `json:"variety,omitempty" gorm:"type:varchar(100)"`
	SowingDate   datatypes.Date      `json:"sowing_date" gorm:"not null;index"`
	HarvestDate  *datatypes.Date     `json:"harvest_date,omitempty" gorm:"index"`
	YieldKG      decimal.NullDecimal `json:"yield_kg" gorm:"column:yield_kg;type:numeric(10,2);check:chk_crop_records_yield_kg_range,yield_kg IS NULL OR yield_kg >= 0"`
	QualityGrade string              `json:"quality_grade,omitempty" gorm:"type:varchar(20)"`
	Notes        string              `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time           `json:"created_at" gorm:"not null"`

	Field *Field `json:"field,omitempty" gorm:"foreignKey:FieldID"`
}

func (CropRecord) TableName() string { return "crop_records" }

func (r *CropRecord) Validate() error {
	c := newChecks("crop_record")
	c.required("field_id", r.FieldID == uuid.Nil)
	c.text("crop_type", r.CropType, 100, true)
	c.text("variety", r.Variety, 100, false)
	c.required("sowing_date", dateIsZero(r.SowingDate))
	if h := r.HarvestDate; h != nil && !dateIsZero(r.SowingDate) && time.Time(*h).Before(time.Time(r.SowingDate)) {
		c.fail("harvest_date", formatDate(*h), ErrOutOfRange)
	}
	c.nullNumeric("yield_kg", &r.YieldKG, NumericQuantity, &zero, nil)
	c.text("quality_grade", r.QualityGrade, 20, false)
	return c.err()
}

func (r CropRecord) String() string {
	return fmt.Sprintf("<CropRecord id=%s crop_type=%s field_id=%s>", r.ID, r.CropType, r.FieldID)
}
