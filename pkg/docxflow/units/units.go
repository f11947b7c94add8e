// Package units converts between physical lengths and the integer units used
// inside WordprocessingML markup.
//
// A Length is stored in English Metric Units (EMU), the finest unit Office
// uses. Markup attributes are written in other units: table and page geometry
// use twentieths of a point ("twips", type "dxa"), font sizes use half-points
// and proportional widths use fiftieths of a percent ("pct", 5000 == 100%).
//
// Conversions from decimal inputs go through shopspring/decimal so that values
// such as Cm(2.5) or Inches(8.27) land on the exact EMU count instead of one
// below it.
package units

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Length is a distance in EMU.
type Length int64

const (
	EMUPerInch  = 914400
	EMUPerCm    = 360000
	EMUPerPoint = 12700
	EMUPerTwip  = 635

	// FullWidthPercent is 100% expressed in fiftieths of a percent.
	FullWidthPercent = 5000
)

var (
	// A4Width and A4Height are substituted when a section carries no page size.
	A4Width  = Inches(8.27)
	A4Height = Inches(11.69)

	// DefaultContentWidth is the usable width of a Letter page with 1in margins.
	DefaultContentWidth = Inches(6.5)
)

func fromDecimal(v decimal.Decimal, perUnit int64) Length {
	return Length(v.Mul(decimal.NewFromInt(perUnit)).IntPart())
}

// Inches returns the length of v inches.
func Inches(v float64) Length {
	return fromDecimal(decimal.NewFromFloat(v), EMUPerInch)
}

// Cm returns the length of v centimetres.
func Cm(v float64) Length {
	return fromDecimal(decimal.NewFromFloat(v), EMUPerCm)
}

// Pt returns the length of v points.
func Pt(v float64) Length {
	return fromDecimal(decimal.NewFromFloat(v), EMUPerPoint)
}

// Twips returns the length of v twentieths of a point.
func Twips(v int64) Length {
	return Length(v * EMUPerTwip)
}

// HalfPoints returns the length of v half-points, the unit of w:sz.
func HalfPoints(v int64) Length {
	return Length(v * EMUPerPoint / 2)
}

// EMU returns the raw value.
func (l Length) EMU() int64 {
	return int64(l)
}

// Twips truncates the length to whole twips.
func (l Length) Twips() int64 {
	return int64(l) / EMUPerTwip
}

// HalfPoints rounds the length to the nearest half-point.
func (l Length) HalfPoints() int64 {
	return decimal.NewFromInt(int64(l)).
		Div(decimal.NewFromInt(EMUPerPoint / 2)).
		Round(0).
		IntPart()
}

// Points returns the length in points.
func (l Length) Points() float64 {
	return decimal.NewFromInt(int64(l)).Div(decimal.NewFromInt(EMUPerPoint)).InexactFloat64()
}

// Inches returns the length in inches.
func (l Length) Inches() float64 {
	return decimal.NewFromInt(int64(l)).Div(decimal.NewFromInt(EMUPerInch)).InexactFloat64()
}

// Cm returns the length in centimetres.
func (l Length) Cm() float64 {
	return decimal.NewFromInt(int64(l)).Div(decimal.NewFromInt(EMUPerCm)).InexactFloat64()
}

// String formats the length in centimetres with two decimals.
func (l Length) String() string {
	return decimal.NewFromInt(int64(l)).Div(decimal.NewFromInt(EMUPerCm)).StringFixed(2) + "cm"
}

var suffixes = []struct {
	suffix  string
	perUnit int64
}{
	{"emu", 1},
	{"cm", EMUPerCm},
	{"mm", EMUPerCm / 10},
	{"in", EMUPerInch},
	{"pt", EMUPerPoint},
	{"tw", EMUPerTwip},
	{"dxa", EMUPerTwip},
}

// Parse reads a length such as "2.5cm", "1in", "12pt", "1440tw" or "914400emu".
// A bare number is read as centimetres.
func Parse(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty length")
	}

	perUnit := int64(EMUPerCm)
	num := s
	for _, u := range suffixes {
		if strings.HasSuffix(s, u.suffix) {
			perUnit = u.perUnit
			num = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}

	v, err := decimal.NewFromString(num)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return fromDecimal(v, perUnit), nil
}

// PercentUnits converts a ratio of the available width into fiftieths of a
// percent, truncating toward zero.
func PercentUnits(ratio float64) int64 {
	return decimal.NewFromFloat(ratio).Mul(decimal.NewFromInt(FullWidthPercent)).IntPart()
}

// SplitPercent distributes FullWidthPercent over n columns, giving the first
// column ratio of the width and dividing the remainder evenly (truncated)
// between the others. The returned values need not sum to FullWidthPercent.
func SplitPercent(ratio float64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []int64{FullWidthPercent}
	}

	first := PercentUnits(ratio)
	rest := (FullWidthPercent - first) / int64(n-1)

	widths := make([]int64, n)
	widths[0] = first
	for i := 1; i < n; i++ {
		widths[i] = rest
	}
	return widths
}

// SplitEven divides total into n equal parts, truncating each to whole EMU.
func SplitEven(total Length, n int) []Length {
	if n <= 0 {
		return nil
	}
	part := Length(int64(total) / int64(n))
	widths := make([]Length, n)
	for i := range widths {
		widths[i] = part
	}
	return widths
}
