package level

import (
	"strconv"

	"beamgrid/internal/core"
)

// Parameters describes the level for the HUD.
func (l *Level) Parameters() core.ParameterSnapshot {
	locked := 0
	for _, d := range l.devices {
		if d.Locked {
			locked++
		}
	}
	name := l.Name
	if name == "" {
		name = "untitled"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Level",
			Params: []core.Parameter{
				{Key: "name", Label: "Name", Type: core.ParamTypeString, Value: name},
				intParam("w", "Width", l.grid.W),
				intParam("h", "Height", l.grid.H),
				intParam("devices", "Devices", len(l.devices)),
				intParam("locked", "Locked", locked),
			},
		},
		{
			Name: "Signals",
			Params: []core.Parameter{
				intParam("lasers", "Lasers", len(l.lasers)),
				intParam("goals", "Goals", l.goals),
				intParam("goals_fulfilled", "Fulfilled", l.goalsFulfilled),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}
