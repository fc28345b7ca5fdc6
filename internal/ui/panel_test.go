package ui

import (
	"testing"

	"beamgrid/internal/core"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Level", Params: []core.Parameter{
			{Key: "name", Label: "Name", Value: "intro"},
			{Key: "w", Value: "9"},
		}},
		{Name: "Signals", Summary: "1 of 2 goals lit"},
	}}
	want := []Line{
		{Text: "Level", Header: true},
		{Text: "Name: intro"},
		{Text: "w: 9"},
		{Text: "Signals", Header: true},
		{Text: "1 of 2 goals lit"},
	}
	if diff := cmp.Diff(want, Lines(snap)); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestButtonsHitTest(t *testing.T) {
	buttons := layoutButtons(240, 400)
	if len(buttons) != 3 {
		t.Fatalf("expected three buttons, got %d", len(buttons))
	}
	for _, b := range buttons {
		c := b.rect.Min.Add(b.rect.Size().Div(2))
		if got := buttonAt(buttons, c.X, c.Y); got != b.action {
			t.Fatalf("centre of %q hit %v", b.label, got)
		}
		if b.rect.Max.Y > 400-panelPadding {
			t.Fatalf("button %q overflows the panel: %v", b.label, b.rect)
		}
	}
	if got := buttonAt(buttons, 0, 0); got != ActionNone {
		t.Fatalf("empty area hit %v", got)
	}
	if layoutButtons(10, 400) != nil {
		t.Fatal("a panel too narrow for buttons should get none")
	}
}
