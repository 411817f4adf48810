package engine

// PlantStage est un palier de croissance de la plante
type PlantStage struct {
	Stage       int
	Name        string
	XPThreshold int
}

// PlantStages est la table ordonnée des sept paliers. Les seuils correspondent
// aux anciens paliers de niveau (2, 4, 7, 10, 15, 20) projetés sur la courbe
// d'XP par défaut. Le dernier palier est terminal : la séquence sature, elle
// ne reboucle jamais.
var PlantStages = []PlantStage{
	{Stage: 1, Name: "Seed", XPThreshold: 0},
	{Stage: 2, Name: "Sprout", XPThreshold: 500},
	{Stage: 3, Name: "Seedling", XPThreshold: 1400},
	{Stage: 4, Name: "Young Tree", XPThreshold: 3500},
	{Stage: 5, Name: "Mature Tree", XPThreshold: 6500},
	{Stage: 6, Name: "Ancient Tree", XPThreshold: 13500},
	{Stage: 7, Name: "Forest Guardian", XPThreshold: 23000},
}

// PlantInfo décrit la position d'un total d'XP sur l'échelle des paliers
type PlantInfo struct {
	Stage         int
	StageName     string
	XPToNextStage int
}

// PlantStageFor retourne le palier atteint pour un total d'XP.
// XPToNextStage vaut 0 uniquement au palier terminal.
func PlantStageFor(totalXP int) PlantInfo {
	if totalXP < 0 {
		totalXP = 0
	}

	current := PlantStages[0]
	for _, s := range PlantStages {
		if totalXP >= s.XPThreshold {
			current = s
		} else {
			break
		}
	}

	info := PlantInfo{Stage: current.Stage, StageName: current.Name}
	if current.Stage < len(PlantStages) {
		next := PlantStages[current.Stage] // index = stage suivant - 1
		info.XPToNextStage = next.XPThreshold - totalXP
		if info.XPToNextStage < 0 {
			info.XPToNextStage = 0
		}
	}
	return info
}
