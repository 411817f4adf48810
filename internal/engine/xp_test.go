package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/EcoBloomApp/EcoBloom-backend/internal/models"
)

func TestXPForActivityBase(t *testing.T) {
	// 0 kg, catégorie sans bonus : juste la base
	assert.Equal(t, 10, XPForActivity(0, model.CategoryOther))
}

func TestXPForActivityCategoryBonus(t *testing.T) {
	assert.Equal(t, 20, XPForActivity(0, model.CategoryTransportation))
	assert.Equal(t, 15, XPForActivity(0, model.CategoryFood))
	assert.Equal(t, 15, XPForActivity(0, model.CategoryEnergy))
	assert.Equal(t, 15, XPForActivity(0, model.CategoryShopping))
}

func TestXPForActivityCO2Component(t *testing.T) {
	// 2.5 kg -> 12 XP CO2, +10 base, +5 bonus food
	assert.Equal(t, 27, XPForActivity(2.5, model.CategoryFood))
}

func TestXPForActivityCapped(t *testing.T) {
	// Le plafond global de 50 s'applique quoi qu'il arrive
	assert.Equal(t, 50, XPForActivity(100, model.CategoryTransportation))
	assert.Equal(t, 50, XPForActivity(8, model.CategoryTransportation))
}

func TestXPForActivityNegativeCO2Ignored(t *testing.T) {
	assert.Equal(t, 10, XPForActivity(-3, model.CategoryOther))
}
