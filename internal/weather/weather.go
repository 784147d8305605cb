// Package weather rolls and describes battlefield-wide weather effects. It is
// stateless: all randomness comes from the caller-supplied source and the
// effect itself lives on the BattleState.
package weather

import (
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
)

const clearProbability = 0.30

// changeProbability applies on every 7th turn after the initial roll.
const changeProbability = 0.40

var weatherTypes = []game.WeatherType{
	game.WeatherRain,
	game.WeatherStorm,
	game.WeatherFog,
	game.WeatherSnow,
	game.WeatherSandstorm,
}

// NewEffect builds the fixed modifier triple for a weather type with a
// duration drawn uniformly from {3,4,5,6} turns.
func NewEffect(t game.WeatherType, src *rng.Source) *game.WeatherEffect {
	e := &game.WeatherEffect{Type: t, AttackMod: 1.0, DefenseMod: 1.0, SpeedMod: 1.0}
	switch t {
	case game.WeatherRain:
		e.AttackMod = 0.90
		e.SpeedMod = 0.95
	case game.WeatherStorm:
		e.AttackMod = 1.15
		e.DefenseMod = 0.90
	case game.WeatherFog:
		e.AttackMod = 0.85
		e.DefenseMod = 1.10
	case game.WeatherSnow:
		e.DefenseMod = 1.05
		e.SpeedMod = 0.80
	case game.WeatherSandstorm:
		e.AttackMod = 0.95
		e.DefenseMod = 0.95
		e.SpeedMod = 0.90
	}
	e.TurnsRemaining = 3 + src.Intn(4)
	return e
}

// Generate rolls new weather: clear (nil) with probability 0.30, otherwise a
// uniform draw among the weather types.
func Generate(src *rng.Source) *game.WeatherEffect {
	if src.Chance(clearProbability) {
		return nil
	}
	t := weatherTypes[src.Intn(len(weatherTypes))]
	return NewEffect(t, src)
}

// ShouldChange reports whether the weather must be re-rolled on the given
// turn. Turn 1 always rolls (initial weather is mandatory); every 7th turn
// re-rolls with probability 0.40.
func ShouldChange(turn int, src *rng.Source) bool {
	if turn == 1 {
		return true
	}
	if turn%7 == 0 {
		return src.Chance(changeProbability)
	}
	return false
}
