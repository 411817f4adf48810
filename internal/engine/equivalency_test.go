package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreesPlanted(t *testing.T) {
	assert.InDelta(t, 1.0, TreesPlanted(22.0), 1e-9)
	assert.InDelta(t, 0.5, TreesPlanted(11.0), 1e-9)
}

func TestMilesNotDriven(t *testing.T) {
	assert.InDelta(t, 1.0, MilesNotDriven(0.404), 1e-9)
}

func TestLEDHours(t *testing.T) {
	assert.InDelta(t, 1000.0, LEDHours(6.0), 1e-9)
}

func TestEquivalentsZero(t *testing.T) {
	assert.Zero(t, TreesPlanted(0))
	assert.Zero(t, MilesNotDriven(0))
	assert.Zero(t, LEDHours(0))
}

func TestEquivalentsLinear(t *testing.T) {
	// Conversions linéaires : doubler l'entrée double la sortie
	assert.InDelta(t, 2*TreesPlanted(7.3), TreesPlanted(14.6), 1e-9)
	assert.InDelta(t, 2*MilesNotDriven(7.3), MilesNotDriven(14.6), 1e-9)
	assert.InDelta(t, 2*LEDHours(7.3), LEDHours(14.6), 1e-9)
}
