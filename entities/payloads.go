package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PayloadSchemaVersion is the current version of the object-shaped JSON
// columns (weather_forecast, device_info, metadata). Readers branch on the
// stored schema_version when the shape changes.
const PayloadSchemaVersion = 1

// Prediction is one ranked entry of image_inferences.predictions.
type Prediction struct {
	Disease    string          `json:"disease"`
	Confidence decimal.Decimal `json:"confidence"`
	Severity   Severity        `json:"severity,omitempty"`
}

// Product is one entry of recommendations.products.
type Product struct {
	Name            string `json:"name"`
	Dosage          string `json:"dosage,omitempty"`
	ApplicationRate string `json:"application_rate,omitempty"`
}

// SourceRef is a knowledge base citation in chat_history.sources.
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// WeatherSnapshot is the forecast an irrigation recommendation was computed from.
type WeatherSnapshot struct {
	SchemaVersion int           `json:"schema_version"`
	Source        string        `json:"source,omitempty"`
	RetrievedAt   time.Time     `json:"retrieved_at"`
	Days          []ForecastDay `json:"days,omitempty"`
}

type ForecastDay struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	RainfallMM float64 `json:"rainfall_mm"`
	TempMinC   float64 `json:"temp_min_c"`
	TempMaxC   float64 `json:"temp_max_c"`
	ET0MM      float64 `json:"et0_mm,omitempty"`
}

// DeviceInfo describes the handset behind a push token.
type DeviceInfo struct {
	SchemaVersion int    `json:"schema_version"`
	Model         string `json:"model,omitempty"`
	OSVersion     string `json:"os_version,omitempty"`
	AppVersion    string `json:"app_version,omitempty"`
}

// LogMetadata is free-form context attached to an audit record.
type LogMetadata struct {
	SchemaVersion int               `json:"schema_version"`
	RequestID     string            `json:"request_id,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// JSON wraps v for an optional object-shaped JSON column.
func JSON[T any](v T) *datatypes.JSONType[T] {
	j := datatypes.NewJSONType(v)
	return &j
}

// stampVersion sets schema_version on a stored payload when the caller left it zero.
func stampVersion[T any](j *datatypes.JSONType[T], get func(*T) *int) {
	if j == nil {
		return
	}
	data := j.Data()
	if v := get(&data); *v == 0 {
		*v = PayloadSchemaVersion
		*j = datatypes.NewJSONType(data)
	}
}
