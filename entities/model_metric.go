package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ModelMetric is one evaluation result of a disease model. DiseaseClass is
// empty for an overall score.
type ModelMetric struct {
	Identity
	ModelVersion   string          `json:"model_version" gorm:"type:varchar(50);not null;index"`
	MetricType     MetricType      `json:"metric_type" gorm:"type:varchar(50);not null;index;check:chk_model_metrics_metric_type,metric_type IN ('accuracy','precision','recall','f1_score')"`
	MetricValue    decimal.Decimal `json:"metric_value" gorm:"type:numeric(5,4);not null;check:chk_model_metrics_metric_value_range,metric_value BETWEEN 0 AND 1"`
	DiseaseClass   string          `json:"disease_class,omitempty" gorm:"type:varchar(100)"`
	EvaluationDate datatypes.Date  `json:"evaluation_date" gorm:"not null;index"`
	SampleSize     *int            `json:"sample_size,omitempty" gorm:"check:chk_model_metrics_sample_size_range,sample_size IS NULL OR sample_size >= 0"`
	Notes          string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null"`
}

func (ModelMetric) TableName() string { return "model_metrics" }

func (m *ModelMetric) Validate() error {
	c := newChecks("model_metric")
	c.text("model_version", m.ModelVersion, 50, true)
	c.oneOf("metric_type", m.MetricType)
	c.numeric("metric_value", &m.MetricValue, NumericRatio, &zero, &one)
	c.text("disease_class", m.DiseaseClass, 100, false)
	c.required("evaluation_date", dateIsZero(m.EvaluationDate))
	if m.SampleSize != nil && *m.SampleSize < 0 {
		c.fail("sample_size", *m.SampleSize, ErrOutOfRange)
	}
	return c.err()
}

func (m ModelMetric) String() string {
	return fmt.Sprintf("<ModelMetric id=%s model_version=%s metric_type=%s value=%s>",
		m.ID, m.ModelVersion, m.MetricType, m.MetricValue)
}
