// Package rate holds the numeric conventions shared by every statistical domain:
// percentages are computed from summed numerators and denominators, a non-positive
// denominator yields 0, and every published figure is rounded to one decimal.
package rate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const precision = 1

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(precision).InexactFloat64()
}

// SafeRatio returns numerator/denominator*100, or 0 when denominator <= 0.
func SafeRatio(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}

	num := decimal.NewFromFloat(numerator)
	den := decimal.NewFromFloat(denominator)

	return num.Mul(decimal.NewFromInt(100)).DivRound(den, precision).InexactFloat64()
}

// Fraction accumulates a numerator and a denominator across territories so the rate is
// derived once from the sums.
type Fraction struct {
	Numerator   float64
	Denominator float64
}

func (f Fraction) Add(o Fraction) Fraction {
	return Fraction{Numerator: f.Numerator + o.Numerator, Denominator: f.Denominator + o.Denominator}
}

func (f Fraction) Rate() float64 {
	return SafeRatio(f.Numerator, f.Denominator)
}

type Evolution struct {
	StartValue          float64 `json:"start_value"`
	EndValue            float64 `json:"end_value"`
	EvolutionPercentage float64 `json:"evolution_percentage"`
	Period              string  `json:"period"`
}

// EvolutionPercentage is (end-start)/start*100, or 0 when start <= 0.
func EvolutionPercentage(start, end float64) float64 {
	return SafeRatio(end-start, start)
}

func NewEvolution(startYear, endYear int, start, end float64) Evolution {
	return Evolution{
		StartValue:          start,
		EndValue:            end,
		EvolutionPercentage: EvolutionPercentage(start, end),
		Period:              fmt.Sprintf("%d-%d", startYear, endYear),
	}
}
