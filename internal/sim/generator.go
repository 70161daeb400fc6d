// Package sim provides the box-score stat generator for simulated games.
package sim

import (
	"math"
	"math/rand"
	"time"
)

// Stat category base values, scaled by the player's skill factor.
const (
	basePoints   = 30.0
	baseAssists  = 10.0
	baseRebounds = 10.0
	baseSteals   = 5.0
	baseBlocks   = 5.0
)

// Stat category variance spreads. Each draw is uniform in (-spread/2, spread/2).
const (
	spreadPoints   = 10.0
	spreadAssists  = 5.0
	spreadRebounds = 5.0
	spreadSteals   = 2.0
	spreadBlocks   = 2.0
)

// Normalization constants for physical attributes.
const (
	referenceHeightCm  = 210.0
	referenceWeightLbs = 280.0
)

// positionWeights maps a position to its weight vector over
// (points, assists, rebounds, steals, blocks).
var positionWeights = map[string][5]float64{
	"PG": {1.0, 1.5, 0.5, 1.0, 0.5},
	"SG": {1.2, 1.0, 0.6, 1.0, 0.6},
	"SF": {1.0, 0.8, 1.0, 0.8, 0.8},
	"PF": {0.8, 0.6, 1.2, 0.6, 1.0},
	"C":  {0.7, 0.5, 1.5, 0.5, 1.5},
}

// PlayerAttributes holds the player inputs the generator depends on.
type PlayerAttributes struct {
	Position  string
	Skill     int
	HeightCm  int
	WeightLbs int
}

// Line is one player's box-score contribution to one simulated game.
// All values are non-negative.
type Line struct {
	Points   int
	Assists  int
	Rebounds int
	Steals   int
	Blocks   int
}

// Generator produces stat lines from player attributes. The randomness
// source is injectable so tests can fix a seed; a nil source falls back
// to a time-seeded one.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator backed by the given randomness source.
func New(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(src)}
}

// Line generates one box-score line for a player. For a fixed source state
// the output is a deterministic function of the attributes; draws are
// consumed in category order (points, assists, rebounds, steals, blocks).
func (g *Generator) Line(p PlayerAttributes) Line {
	skillFactor := float64(p.Skill) / 100.0

	weights, ok := positionWeights[p.Position]
	if !ok {
		weights = [5]float64{1.0, 1.0, 1.0, 1.0, 1.0}
	}

	heightFactor := float64(p.HeightCm) / referenceHeightCm
	weightFactor := float64(p.WeightLbs) / referenceWeightLbs
	reboundFactor := (heightFactor + weightFactor) / 2.0

	return Line{
		Points:   g.stat(skillFactor*basePoints, spreadPoints, weights[0]),
		Assists:  g.stat(skillFactor*baseAssists, spreadAssists, weights[1]),
		Rebounds: g.stat(skillFactor*baseRebounds, spreadRebounds, weights[2]*reboundFactor),
		Steals:   g.stat(skillFactor*baseSteals, spreadSteals, weights[3]),
		Blocks:   g.stat(skillFactor*baseBlocks, spreadBlocks, weights[4]*heightFactor),
	}
}

// stat draws one stat value: base plus uniform variance, scaled by the
// combined weight, rounded to the nearest integer and clamped at zero.
func (g *Generator) stat(base, spread, weight float64) int {
	variance := (g.rng.Float64() - 0.5) * spread
	value := int(math.Round((base + variance) * weight))
	if value < 0 {
		value = 0
	}
	return value
}
