package entities

import "github.com/shopspring/decimal"

// Numeric describes a numeric(precision, scale) column.
type Numeric struct {
	Precision int32
	Scale     int32
}

var (
	NumericPercent   = Numeric{Precision: 5, Scale: 2}  // confidences, soil moisture
	NumericQuantity  = Numeric{Precision: 10, Scale: 2} // hectares, liters, kg
	NumericLatitude  = Numeric{Precision: 10, Scale: 8}
	NumericLongitude = Numeric{Precision: 11, Scale: 8}
	NumericRatio     = Numeric{Precision: 5, Scale: 4} // model metric values
)

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	minLat  = decimal.NewFromInt(-90)
	maxLat  = decimal.NewFromInt(90)
	minLong = decimal.NewFromInt(-180)
	maxLong = decimal.NewFromInt(180)
)

// Fit rounds d half away from zero to the column scale. It reports false
// when the integer part needs more than precision-scale digits.
func (n Numeric) Fit(d decimal.Decimal) (decimal.Decimal, bool) {
	r := d.Round(n.Scale)
	limit := decimal.New(1, n.Precision-n.Scale)
	if r.Abs().GreaterThanOrEqual(limit) {
		return r, false
	}
	return r, true
}

// Dec parses a decimal literal and panics on malformed input.
// Intended for constants and tests.
func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// NullDec wraps a decimal literal as a present nullable value.
func NullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(Dec(s))
}
