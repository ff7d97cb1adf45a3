package diagram

import "contractlens/internal/model"

type palette struct {
	background string
	border     string
}

var categoryColors = map[model.FlowCategory]palette{
	model.FlowOwner:  {"#ffe6e6", "#cc0000"},
	model.FlowAdmin:  {"#fff0e6", "#cc6600"},
	model.FlowUser:   {"#e6ffe6", "#00cc00"},
	model.FlowSystem: {"#e6f3ff", "#0066cc"},
}

var (
	contractColors = palette{"#e6f3ff", "#0066cc"}
	neutralColors  = palette{"#f0f0f0", "#666"}
	eventColors    = palette{"#fff0e6", "#cc6600"}
	securityColors = palette{"#ffe6e6", "#cc0000"}
	variableColors = palette{"#e6ffe6", "#00cc00"}
)

func colorsFor(c model.FlowCategory) palette {
	if p, ok := categoryColors[c]; ok {
		return p
	}
	return categoryColors[model.FlowUser]
}

func (p palette) style(width int) Style {
	return Style{Background: p.background, Border: p.border, Width: width}
}
