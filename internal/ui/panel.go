package ui

import (
	"fmt"
	"image"

	"beamgrid/internal/core"
)

// Action is a request raised by clicking a HUD button.
type Action uint8

const (
	ActionNone Action = iota
	ActionPrevLevel
	ActionReset
	ActionNextLevel
)

// Line is one row of HUD text.
type Line struct {
	Text   string
	Header bool
}

// Lines flattens a parameter snapshot into HUD rows: a header per group
// followed by "label: value" rows.
func Lines(s core.ParameterSnapshot) []Line {
	var out []Line
	for _, g := range s.Groups {
		out = append(out, Line{Text: g.Name, Header: true})
		for _, p := range g.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			out = append(out, Line{Text: fmt.Sprintf("%s: %s", label, p.Value)})
		}
		if g.Summary != "" {
			out = append(out, Line{Text: g.Summary})
		}
	}
	return out
}

type button struct {
	action Action
	label  string
	rect   image.Rectangle
}

// layoutButtons places the level buttons in a row at the bottom of a panel
// of the given size.
func layoutButtons(width, height int) []button {
	labels := []struct {
		action Action
		label  string
	}{
		{ActionPrevLevel, "<"},
		{ActionReset, "reset"},
		{ActionNextLevel, ">"},
	}
	inner := width - 2*panelPadding - (len(labels)-1)*buttonGap
	if inner <= 0 {
		return nil
	}
	w := inner / len(labels)
	y := height - panelPadding - buttonSize
	out := make([]button, len(labels))
	for i, l := range labels {
		x := panelPadding + i*(w+buttonGap)
		out[i] = button{action: l.action, label: l.label, rect: image.Rect(x, y, x+w, y+buttonSize)}
	}
	return out
}

func buttonAt(buttons []button, x, y int) Action {
	for _, b := range buttons {
		if pointInRect(x, y, b.rect) {
			return b.action
		}
	}
	return ActionNone
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 16
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	linesTop       = panelPadding + headerBaseline + 14
)
