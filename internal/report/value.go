package report

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Value is a sealed interface representing result-set cells.
// Only Null, Int, Money, and Text implement this. Each cell type knows how to
// format itself for table display and for JSON, so rendering layers never
// type-switch on raw driver values.
type Value interface {
	cell() // Sealed - only these types implement it

	// Display returns the table-cell form of the value.
	Display() string

	// Numeric reports whether the cell right-aligns in table output.
	Numeric() bool
}

// Null represents SQL NULL.
// The fixture queries project COALESCE around nullable aggregates, so Null
// cells only appear when callers capture nullable columns directly.
type Null struct{}

func (Null) cell()           {}
func (Null) Display() string { return "NULL" }
func (Null) Numeric() bool   { return false }

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Int represents an INTEGER column value.
// Always int64, matching what the SQLite driver scans.
type Int int64

func (Int) cell()             {}
func (v Int) Display() string { return strconv.FormatInt(int64(v), 10) }
func (Int) Numeric() bool     { return true }

// MarshalJSON implements json.Marshaler for Int.
func (v Int) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(v), 10)), nil
}

// Text represents a TEXT column value.
type Text string

func (Text) cell()             {}
func (v Text) Display() string { return string(v) }
func (Text) Numeric() bool     { return false }

// MarshalJSON implements json.Marshaler for Text.
func (v Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

// Money represents a currency amount at fixed two-decimal precision.
// REAL columns holding money are recovered into decimal form at the scan
// boundary so sums and averages display as exact cents (1389.98, never
// 1389.9800000000002).
type Money struct {
	amount decimal.Decimal
}

func (Money) cell()             {}
func (v Money) Display() string { return v.amount.StringFixed(2) }
func (Money) Numeric() bool     { return true }

// MarshalJSON implements json.Marshaler for Money.
// Emits a plain JSON number with exactly two decimal places.
func (v Money) MarshalJSON() ([]byte, error) {
	return []byte(v.amount.StringFixed(2)), nil
}

// MoneyFromFloat converts a scanned REAL into a Money cell.
// decimal.NewFromFloat recovers the shortest decimal representation of the
// float, so well-formed cent values survive exactly; accumulated float noise
// from SUM and AVG is absorbed by rounding to two places.
func MoneyFromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f).Round(2)}
}

// MoneyFromDecimal wraps an exact decimal amount, rounded to cents.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{amount: d.Round(2)}
}

// Decimal returns the exact amount for comparisons.
func (v Money) Decimal() decimal.Decimal {
	return v.amount
}
