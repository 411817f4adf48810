package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForZeroXP(t *testing.T) {
	info := LevelFor(0)

	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 0, info.XPIntoLevel)
	assert.Equal(t, 200, info.XPToNext)
	assert.Equal(t, 0, info.ProgressPercent)
}

func TestLevelThresholds(t *testing.T) {
	// Courbe par défaut : niveau 2 à 200 XP, niveau 3 à 500, niveau 4 à 900
	assert.Equal(t, 0, DefaultLevelCurve.Threshold(1))
	assert.Equal(t, 200, DefaultLevelCurve.Threshold(2))
	assert.Equal(t, 500, DefaultLevelCurve.Threshold(3))
	assert.Equal(t, 900, DefaultLevelCurve.Threshold(4))
}

func TestLevelForBoundaries(t *testing.T) {
	assert.Equal(t, 1, LevelFor(199).Level)
	assert.Equal(t, 2, LevelFor(200).Level)
	assert.Equal(t, 2, LevelFor(499).Level)
	assert.Equal(t, 3, LevelFor(500).Level)
}

func TestLevelForProgress(t *testing.T) {
	// 300 XP : niveau 2 depuis 200, 100 dans le niveau, 200 restants
	info := LevelFor(300)

	assert.Equal(t, 2, info.Level)
	assert.Equal(t, 100, info.XPIntoLevel)
	assert.Equal(t, 200, info.XPToNext)
	assert.Equal(t, 33, info.ProgressPercent)
}

func TestLevelNonDecreasing(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 50000; xp += 37 {
		info := LevelFor(xp)
		require.GreaterOrEqual(t, info.Level, prev, "niveau décroissant à %d XP", xp)
		require.Greater(t, info.XPToNext, 0, "XPToNext nul à %d XP", xp)
		prev = info.Level
	}
}

func TestLevelForNegativeXPClamped(t *testing.T) {
	assert.Equal(t, LevelFor(0), LevelFor(-50))
}

func TestLevelCurveExtrapolates(t *testing.T) {
	// Bien au-delà des paliers usuels, la formule continue de s'appliquer
	info := LevelFor(1_000_000)

	assert.Greater(t, info.Level, 100)
	assert.Greater(t, info.XPToNext, 0)
}
