// Package daynight models the four-phase day cycle and the lighting
// and activity profile of each phase.
package daynight

// TimeOfDay is one of the four phases of the day cycle.
type TimeOfDay string

const (
	Dawn  TimeOfDay = "dawn"
	Day   TimeOfDay = "day"
	Dusk  TimeOfDay = "dusk"
	Night TimeOfDay = "night"
)

// Settings describes how a phase is rendered. Colors are packed RGB.
type Settings struct {
	TimeOfDay                 TimeOfDay `json:"timeOfDay"`
	SkyColor                  uint32    `json:"skyColor"`
	AmbientLightIntensity     float64   `json:"ambientLightIntensity"`
	DirectionalLightIntensity float64   `json:"directionalLightIntensity"`
	DirectionalLightColor     uint32    `json:"directionalLightColor"`
	BuildingLightsOn          bool      `json:"buildingLightsOn"`
}

// Weights splits simulated agents across activity locations for a
// phase. The three fields sum to 1.
type Weights struct {
	Residential float64
	Work        float64
	Leisure     float64
}

var order = []TimeOfDay{Dawn, Day, Dusk, Night}

var settings = map[TimeOfDay]Settings{
	Dawn: {
		TimeOfDay:                 Dawn,
		SkyColor:                  0xffd4b3,
		AmbientLightIntensity:     0.4,
		DirectionalLightIntensity: 0.6,
		DirectionalLightColor:     0xffd6aa,
		BuildingLightsOn:          true,
	},
	Day: {
		TimeOfDay:                 Day,
		SkyColor:                  0xf0f5ff,
		AmbientLightIntensity:     0.6,
		DirectionalLightIntensity: 0.8,
		DirectionalLightColor:     0xffffff,
		BuildingLightsOn:          false,
	},
	Dusk: {
		TimeOfDay:                 Dusk,
		SkyColor:                  0xb1a0c8,
		AmbientLightIntensity:     0.3,
		DirectionalLightIntensity: 0.5,
		DirectionalLightColor:     0xff9955,
		BuildingLightsOn:          true,
	},
	Night: {
		TimeOfDay:                 Night,
		SkyColor:                  0x0c1445,
		AmbientLightIntensity:     0.2,
		DirectionalLightIntensity: 0.1,
		DirectionalLightColor:     0xc2d1ff,
		BuildingLightsOn:          true,
	},
}

var weights = map[TimeOfDay]Weights{
	Dawn:  {Residential: 0.6, Work: 0.3, Leisure: 0.1},
	Day:   {Residential: 0.2, Work: 0.7, Leisure: 0.1},
	Dusk:  {Residential: 0.4, Work: 0.2, Leisure: 0.4},
	Night: {Residential: 0.8, Work: 0.1, Leisure: 0.1},
}

// All returns the phases in cycle order.
func All() []TimeOfDay {
	out := make([]TimeOfDay, len(order))
	copy(out, order)
	return out
}

// Valid reports whether t names a known phase.
func Valid(t TimeOfDay) bool {
	_, ok := settings[t]
	return ok
}

// SettingsFor returns the lighting profile for t. Unknown phases get
// the Day profile.
func SettingsFor(t TimeOfDay) Settings {
	if s, ok := settings[t]; ok {
		return s
	}
	return settings[Day]
}

// WeightsFor returns the activity split for t. Unknown phases get the
// dawn split, matching the default agent behavior.
func WeightsFor(t TimeOfDay) Weights {
	if w, ok := weights[t]; ok {
		return w
	}
	return weights[Dawn]
}

// Next advances the cycle, wrapping night back to dawn. An unknown
// phase restarts at dawn.
func Next(t TimeOfDay) TimeOfDay {
	for i, cur := range order {
		if cur == t {
			return order[(i+1)%len(order)]
		}
	}
	return Dawn
}
