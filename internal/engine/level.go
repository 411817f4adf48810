package engine

import (
	"math"
)

// LevelCurve paramètre la courbe de progression. Le coût incrémental du niveau
// L est BaseXP * L^GrowthExponent : avec les valeurs par défaut, passer au
// niveau 2 coûte 200 XP, au niveau 3 coûte 300 de plus, etc. La courbe n'a pas
// de plafond, elle s'extrapole avec la même formule au-delà de tout niveau.
type LevelCurve struct {
	BaseXP         int
	GrowthExponent float64
}

// DefaultLevelCurve est la courbe du produit (100 * niveau)
var DefaultLevelCurve = LevelCurve{BaseXP: 100, GrowthExponent: 1}

// LevelInfo décrit la position d'un total d'XP sur la courbe
type LevelInfo struct {
	Level           int
	XPIntoLevel     int
	XPToNext        int
	ProgressPercent int
}

// incrementalCost retourne l'XP supplémentaire exigé pour atteindre le niveau donné
func (c LevelCurve) incrementalCost(level int) int {
	return int(float64(c.BaseXP) * math.Pow(float64(level), c.GrowthExponent))
}

// Threshold retourne l'XP cumulé requis pour être au niveau donné.
// Le niveau 1 commence à 0.
func (c LevelCurve) Threshold(level int) int {
	total := 0
	for l := 2; l <= level; l++ {
		total += c.incrementalCost(l)
	}
	return total
}

// LevelFor calcule le niveau et la progression pour un total d'XP.
// 0 XP donne niveau 1, 0%. Le niveau est non décroissant en fonction de l'XP.
func (c LevelCurve) LevelFor(totalXP int) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	level := 1
	threshold := 0
	for {
		next := threshold + c.incrementalCost(level+1)
		if next > totalXP {
			break
		}
		threshold = next
		level++
	}

	into := totalXP - threshold
	toNext := threshold + c.incrementalCost(level+1) - totalXP

	percent := 0
	if span := into + toNext; span > 0 {
		percent = int(math.Round(float64(into) / float64(span) * 100))
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return LevelInfo{
		Level:           level,
		XPIntoLevel:     into,
		XPToNext:        toNext,
		ProgressPercent: percent,
	}
}

// LevelFor applique la courbe par défaut
func LevelFor(totalXP int) LevelInfo {
	return DefaultLevelCurve.LevelFor(totalXP)
}
