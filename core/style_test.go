package core

import "testing"

func TestCaptureStyle(t *testing.T) {
	ws, _ := openFixture(t, 1)

	marker, err := ws.Style(7, 2)
	if err != nil {
		t.Fatalf("Style B7: %v", err)
	}
	if marker.IsZero() || !marker.HasLeftBorder() {
		t.Fatalf("B7 should carry the bordered marker style, got id %d", marker.ID())
	}

	body, err := ws.Style(8, 2)
	if err != nil {
		t.Fatalf("Style B8: %v", err)
	}
	if body.HasLeftBorder() {
		t.Error("B8 has only a bottom border")
	}
	if body.Equal(marker) {
		t.Error("body and marker styles should differ")
	}

	plain, err := ws.Style(30, 30)
	if err != nil {
		t.Fatalf("Style AD30: %v", err)
	}
	if !plain.IsZero() || plain.Definition() != nil {
		t.Errorf("unstyled cell should give a zero snapshot, got id %d", plain.ID())
	}
}

func TestStyleSnapshot_NoAliasing(t *testing.T) {
	ws, _ := openFixture(t, 1)
	snap, err := ws.Style(7, 2)
	if err != nil {
		t.Fatal(err)
	}

	def := snap.Definition()
	def.Border = nil
	def.Fill.Color = []string{"FF0000"}
	if !snap.HasLeftBorder() {
		t.Error("mutating a returned definition changed the snapshot")
	}

	clone, err := snap.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if !clone.Equal(snap) || clone.ID() != snap.ID() {
		t.Error("clone should equal its source")
	}
	clone.Definition().Border = nil
	if !clone.HasLeftBorder() {
		t.Error("clone shares state with its definitions")
	}
}
