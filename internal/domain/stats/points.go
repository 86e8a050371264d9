package stats

import "math"

// Fantasy point weights. Turnovers are deliberately not subtracted yet; the
// published scoring rules advertise the five positive categories only, and
// downstream scores depend on the no-turnover formula.
const (
	WeightPoints   = 1.0
	WeightRebounds = 1.2
	WeightAssists  = 1.5
	WeightSteals   = 3.0
	WeightBlocks   = 3.0

	// TripleDoubleBonus is added when at least three of the five counted
	// categories reach CategoryThreshold in a single game.
	TripleDoubleBonus = 10.0
	CategoryThreshold = 10
)

// Line carries the five counted categories of one game. It is the common
// input shape for the formula, whether the caller holds a full Record or a
// loosely typed field map.
type Line struct {
	Points   float64
	Rebounds float64
	Assists  float64
	Steals   float64
	Blocks   float64
}

// Line projects the counted categories out of a full record.
func (r Record) Line() Line {
	return Line{
		Points:   float64(r.Points),
		Rebounds: float64(r.Rebounds),
		Assists:  float64(r.Assists),
		Steals:   float64(r.Steals),
		Blocks:   float64(r.Blocks),
	}
}

// LineFromMap builds a Line from a plain field-keyed map. Missing or
// non-numeric values coerce to zero so partially ingested rows still score.
func LineFromMap(fields map[string]any) Line {
	return Line{
		Points:   numeric(fields["points"]),
		Rebounds: numeric(fields["rebounds"]),
		Assists:  numeric(fields["assists"]),
		Steals:   numeric(fields["steals"]),
		Blocks:   numeric(fields["blocks"]),
	}
}

// CategoriesAtThreshold counts how many of the five categories reached the
// double-double/triple-double threshold.
func (l Line) CategoriesAtThreshold() int {
	count := 0
	for _, v := range [5]float64{l.Points, l.Rebounds, l.Assists, l.Steals, l.Blocks} {
		if v >= CategoryThreshold {
			count++
		}
	}
	return count
}

// FantasyPoints converts one game line into a fantasy point value, rounded to
// two decimals. Pure: identical input always yields identical output.
func FantasyPoints(l Line) float64 {
	total := l.Points*WeightPoints +
		l.Rebounds*WeightRebounds +
		l.Assists*WeightAssists +
		l.Steals*WeightSteals +
		l.Blocks*WeightBlocks

	if l.CategoriesAtThreshold() >= 3 {
		total += TripleDoubleBonus
	}

	return Round2(total)
}

// FantasyPointsForRecord is the Record-shaped entry point to the formula.
func FantasyPointsForRecord(r Record) float64 {
	return FantasyPoints(r.Line())
}

// Round2 rounds to two decimal places, the precision of every persisted
// fantasy point value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func numeric(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int:
		return float64(value)
	case int32:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return 0
	}
}
