package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlantStageForZeroXP(t *testing.T) {
	info := PlantStageFor(0)

	assert.Equal(t, 1, info.Stage)
	assert.Equal(t, "Seed", info.StageName)
	assert.Equal(t, 500, info.XPToNextStage)
}

func TestPlantStageBoundaries(t *testing.T) {
	assert.Equal(t, 1, PlantStageFor(499).Stage)
	assert.Equal(t, 2, PlantStageFor(500).Stage)
	assert.Equal(t, "Sprout", PlantStageFor(500).StageName)
	assert.Equal(t, 6, PlantStageFor(22999).Stage)
	assert.Equal(t, 7, PlantStageFor(23000).Stage)
	assert.Equal(t, "Forest Guardian", PlantStageFor(23000).StageName)
}

func TestPlantStageNonDecreasing(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 30000; xp += 113 {
		info := PlantStageFor(xp)
		require.GreaterOrEqual(t, info.Stage, prev, "palier décroissant à %d XP", xp)
		prev = info.Stage
	}
}

func TestPlantStageTerminalSaturates(t *testing.T) {
	// Au palier terminal, XPToNextStage vaut 0 et le palier ne bouge plus
	for _, xp := range []int{23000, 50000, 1_000_000} {
		info := PlantStageFor(xp)
		assert.Equal(t, 7, info.Stage)
		assert.Equal(t, 0, info.XPToNextStage)
	}
}

func TestPlantStageXPToNextOnlyZeroAtTerminal(t *testing.T) {
	for xp := 0; xp < 23000; xp += 97 {
		require.Greater(t, PlantStageFor(xp).XPToNextStage, 0, "XPToNextStage nul à %d XP", xp)
	}
}

func TestPlantStageNegativeXPClamped(t *testing.T) {
	assert.Equal(t, PlantStageFor(0), PlantStageFor(-10))
}
