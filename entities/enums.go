package entities

// Closed enumerations. Every value set below is mirrored by a CHECK
// constraint on the owning column, see the gorm tags of each entity.

type UserRole string

const (
	RoleFarmer UserRole = "farmer"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleFarmer, RoleAdmin:
		return true
	}
	return false
}

func (r UserRole) String() string { return string(r) }

type InferenceType string

const (
	InferenceOnDevice InferenceType = "on_device"
	InferenceServer   InferenceType = "server"
)

func (t InferenceType) Valid() bool {
	switch t {
	case InferenceOnDevice, InferenceServer:
		return true
	}
	return false
}

func (t InferenceType) String() string { return string(t) }

type TreatmentType string

const (
	TreatmentChemical   TreatmentType = "chemical"
	TreatmentOrganic    TreatmentType = "organic"
	TreatmentCultural   TreatmentType = "cultural"
	TreatmentBiological TreatmentType = "biological"
)

func (t TreatmentType) Valid() bool {
	switch t {
	case TreatmentChemical, TreatmentOrganic, TreatmentCultural, TreatmentBiological:
		return true
	}
	return false
}

func (t TreatmentType) String() string { return string(t) }

type AlertType string

const (
	AlertHeavyRain AlertType = "heavy_rain"
	AlertFrost     AlertType = "frost"
	AlertHeatWave  AlertType = "heat_wave"
	AlertHail      AlertType = "hail"
	AlertStorm     AlertType = "storm"
	AlertDrought   AlertType = "drought"
	AlertFlood     AlertType = "flood"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertHeavyRain, AlertFrost, AlertHeatWave, AlertHail, AlertStorm, AlertDrought, AlertFlood:
		return true
	}
	return false
}

func (t AlertType) String() string { return string(t) }

// Severity grades weather alerts and disease predictions.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

func (s Severity) String() string { return string(s) }

type DeviceType string

const (
	DeviceIOS     DeviceType = "ios"
	DeviceAndroid DeviceType = "android"
	DeviceWeb     DeviceType = "web"
)

func (t DeviceType) Valid() bool {
	switch t {
	case DeviceIOS, DeviceAndroid, DeviceWeb:
		return true
	}
	return false
}

func (t DeviceType) String() string { return string(t) }

type MetricType string

const (
	MetricAccuracy  MetricType = "accuracy"
	MetricPrecision MetricType = "precision"
	MetricRecall    MetricType = "recall"
	MetricF1Score   MetricType = "f1_score"
)

func (t MetricType) Valid() bool {
	switch t {
	case MetricAccuracy, MetricPrecision, MetricRecall, MetricF1Score:
		return true
	}
	return false
}

func (t MetricType) String() string { return string(t) }
