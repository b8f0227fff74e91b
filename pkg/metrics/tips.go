package metrics

// ImprovementTips suggests concrete next steps based on the current
// snapshot. Thresholds operate on the post-pipeline values.
func ImprovementTips(m Metrics) []string {
	var tips []string
	if m.Emissions > 50 {
		tips = append(tips, "Emissions are high. Add parks and community gardens, or upgrade industrial buildings with clean production methods.")
	}
	if m.Energy > 60 {
		tips = append(tips, "Energy demand is heavy. Place solar arrays, wind turbines, or hydro stations to offset consumption.")
	}
	if m.Water > 50 {
		tips = append(tips, "Water usage is high. A water treatment plant or water recycling upgrades would help.")
	}
	if m.Heat > 40 {
		tips = append(tips, "The urban heat island effect is growing. Green roofs and more greenspace will cool the city.")
	}
	if m.Happiness < 30 {
		tips = append(tips, "Citizens are unhappy. Parks, theaters, and healthcare access raise happiness.")
	}
	if m.Traffic > 60 {
		tips = append(tips, "Traffic is congested. Extend the road network to match your building density.")
	}
	return tips
}
