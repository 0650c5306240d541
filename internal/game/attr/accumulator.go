package attr

import "fmt"

// Buff is a monotone-additive magnitude. The zero value is neutral (1.0).
type Buff struct {
	sum float64
}

// Add raises the buff by x.
//
// Precondition: x >= 0. A negative contribution panics.
func (b *Buff) Add(x float64) {
	if x < 0 {
		panic(fmt.Sprintf("attr: negative buff contribution %v", x))
	}
	b.sum += x
}

// Value returns the multiplier, always >= 1.
func (b Buff) Value() float64 { return 1 + b.sum }

// Debuff is a monotone-multiplicative magnitude. The zero value is neutral (1.0).
// It is stored as the lost fraction so the zero value needs no constructor.
type Debuff struct {
	cut float64
}

// Mul scales the retained fraction by f.
//
// Precondition: 0 <= f <= 1. Any other factor panics.
func (d *Debuff) Mul(f float64) {
	if f < 0 || f > 1 {
		panic(fmt.Sprintf("attr: debuff factor %v outside [0,1]", f))
	}
	d.cut = 1 - (1-d.cut)*f
}

// Value returns the multiplier in [0, 1].
func (d Debuff) Value() float64 { return 1 - d.cut }

// Percent is a fraction-of-max accumulator used for HP and MP. Storing the
// fraction keeps the current value proportional when the maximum changes.
//
// Invariant: value <= 1. Sub may drive the value below zero to signal death.
type Percent struct {
	value float64
}

// NewPercent returns a Percent at v.
//
// Precondition: 0 <= v <= 1; out-of-range values panic.
func NewPercent(v float64) Percent {
	if v < 0 || v > 1 {
		panic(fmt.Sprintf("attr: percent %v outside [0,1]", v))
	}
	return Percent{value: v}
}

// Fraction returns the stored fraction of max.
func (p Percent) Fraction() float64 { return p.value }

// Of returns the absolute amount given the current max.
func (p Percent) Of(max float64) float64 { return p.value * max }

// Add raises the accumulator by amount, saturating at max.
func (p *Percent) Add(amount, max float64) {
	if max <= 0 {
		return
	}
	p.value += amount / max
	if p.value > 1 {
		p.value = 1
	}
}

// Sub lowers the accumulator by amount. The result may be negative.
func (p *Percent) Sub(amount, max float64) {
	if max <= 0 {
		return
	}
	p.value -= amount / max
}

// SubFloor lowers the accumulator by amount, saturating at zero.
func (p *Percent) SubFloor(amount, max float64) {
	p.Sub(amount, max)
	if p.value < 0 {
		p.value = 0
	}
}
