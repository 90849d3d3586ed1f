// Package glitch produces the randomized jitter added to the card's
// sampling offset. The offset is a pure function of elapsed time and the
// generator's seed, so a replay with the same seed is identical.
package glitch

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/redact/common"
	"github.com/milk9111/redact/tween"
)

type Params struct {
	// Spread scales the viewport size into the maximum displacement.
	Spread  float64
	OutMin  time.Duration
	OutMax  time.Duration
	BackMin time.Duration
	BackMax time.Duration
	RestMin time.Duration
	RestMax time.Duration
	Ease    tween.Ease
}

func DefaultParams() Params {
	return Params{
		Spread:  5,
		OutMin:  25 * time.Millisecond,
		OutMax:  100 * time.Millisecond,
		BackMin: 0,
		BackMax: 100 * time.Millisecond,
		RestMin: 2500 * time.Millisecond,
		RestMax: 7500 * time.Millisecond,
		Ease:    tween.Power1Out,
	}
}

// Cycle is one outbound-and-back displacement.
type Cycle struct {
	Start  time.Duration
	Target common.Vec2
	Out    time.Duration
	Back   time.Duration
	Rest   time.Duration
}

// End is when the offset returns to exactly zero.
func (c Cycle) End() time.Duration {
	return c.Start + c.Out + c.Back
}

// Next is when the following cycle begins.
func (c Cycle) Next() time.Duration {
	return c.Start + c.Rest + c.Out + c.Back
}

// At returns the displacement at elapsed time t using the default ease.
func (c Cycle) At(t time.Duration) common.Vec2 {
	return c.AtEase(t, nil)
}

func (c Cycle) AtEase(t time.Duration, ease tween.Ease) common.Vec2 {
	if t < c.Start || t >= c.End() {
		return common.Vec2{}
	}
	if ease == nil {
		ease = tween.DefaultEase
	}
	d := t - c.Start
	if d < c.Out {
		return c.Target.Scale(ease(float64(d) / float64(c.Out)))
	}
	d -= c.Out
	return c.Target.Scale(1 - ease(float64(d)/float64(c.Back)))
}

type Generator struct {
	params Params
	seed   uint64
	rng    *rand.Rand
	width  float64
	height float64
	cycle  Cycle
}

// NewGenerator starts the first cycle at time zero using the given
// viewport size for its displacement.
func NewGenerator(seed uint64, params Params, width, height float64) *Generator {
	g := &Generator{params: params, width: width, height: height}
	g.Reset(seed)
	return g
}

// Reset reseeds the generator and restarts the cycle table at time zero.
func (g *Generator) Reset(seed uint64) {
	g.seed = seed
	g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g.cycle = g.draw(0)
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

// SetViewport changes the size used for cycles drawn from now on.
func (g *Generator) SetViewport(width, height float64) {
	g.width = width
	g.height = height
}

// SetParams changes the ranges used for cycles drawn from now on.
func (g *Generator) SetParams(p Params) {
	g.params = p
}

// Cycle returns the cycle that covers the last queried time.
func (g *Generator) Cycle() Cycle {
	return g.cycle
}

// Offset returns the glitch displacement at elapsed time t. Time only
// moves forward: asking for a moment inside an already finished cycle
// yields zero.
func (g *Generator) Offset(t time.Duration) common.Vec2 {
	for t >= g.cycle.Next() {
		g.cycle = g.draw(g.cycle.Next())
	}
	return g.cycle.AtEase(t, g.params.Ease)
}

func (g *Generator) draw(start time.Duration) Cycle {
	p := g.params
	x := (g.rng.Float64() - 0.5) * g.width * p.Spread
	y := (g.rng.Float64() - 0.5) * g.height * p.Spread
	out := g.between(p.OutMin, p.OutMax)
	if out <= 0 {
		out = time.Millisecond
	}
	// Params bypass scene validation, so keep every cycle moving forward.
	back := max(g.between(p.BackMin, p.BackMax), 0)
	rest := max(g.between(p.RestMin, p.RestMax), 0)
	return Cycle{
		Start:  start,
		Target: common.Vec2{X: x, Y: y},
		Out:    out,
		Back:   back,
		Rest:   rest,
	}
}

func (g *Generator) between(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(g.rng.Float64()*float64(hi-lo))
}
