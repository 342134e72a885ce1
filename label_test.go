package rowan

import "testing"

// --- Drawing ---

func TestLabelDrawsAtGlobalPosition(t *testing.T) {
	r := newRecordingRenderer()
	l := NewLabel("title")
	l.SetText("score")
	l.SetPosition(Vec2{100, 50})

	l.Draw(r)
	cmds := r.commands()
	if len(cmds) != 1 || cmds[0].Type != CommandText {
		t.Fatalf("commands = %+v", cmds)
	}
	if cmds[0].Text != "score" {
		t.Errorf("text = %q", cmds[0].Text)
	}
	assertVec2Near(t, "position", cmds[0].Position, Vec2{100, 50})
	if cmds[0].Color != ColorWhite {
		t.Errorf("color = %+v", cmds[0].Color)
	}
}

func TestLabelAlignment(t *testing.T) {
	// The fake font is 8 pixels per rune: "score" measures 40 wide.
	cases := []struct {
		name  string
		align TextAlign
		wantX float64
	}{
		{"left", TextAlignLeft, 100},
		{"center", TextAlignCenter, 80},
		{"right", TextAlignRight, 60},
	}
	for _, tc := range cases {
		r := newRecordingRenderer()
		l := NewLabel("title")
		l.SetText("score")
		l.SetPosition(Vec2{100, 50})
		l.SetAlign(tc.align)

		l.Draw(r)
		assertVec2Near(t, tc.name, r.commands()[0].Position, Vec2{tc.wantX, 50})
	}
}

func TestLabelEmptyTextDrawsNothing(t *testing.T) {
	r := newRecordingRenderer()
	l := NewLabel("title")

	l.Draw(r)
	if len(r.commands()) != 0 || len(r.fontLoads) != 0 {
		t.Error("an empty label should not draw or load")
	}
}

func TestLabelFontLoadsOnceAndReloadsOnChange(t *testing.T) {
	r := newRecordingRenderer()
	l := NewLabel("title")
	l.SetText("hi")
	l.SetFontPath("ui.ttf")

	l.Draw(r)
	l.Draw(r)
	if r.fontLoads["ui.ttf"] != 1 {
		t.Errorf("loads = %d, want 1", r.fontLoads["ui.ttf"])
	}

	// Changing the size drops the cached face.
	l.SetFontSize(24)
	l.Draw(r)
	if r.fontLoads["ui.ttf"] != 2 {
		t.Errorf("loads = %d after size change, want 2", r.fontLoads["ui.ttf"])
	}

	// Setting the same size again is a no-op.
	l.SetFontSize(24)
	l.Draw(r)
	if r.fontLoads["ui.ttf"] != 2 {
		t.Errorf("loads = %d after no-op size set, want 2", r.fontLoads["ui.ttf"])
	}
}

func TestLabelFontFailureIsLatched(t *testing.T) {
	r := newRecordingRenderer()
	l := NewLabel("title")
	l.SetText("hi")
	l.SetFontPath("missing.ttf")

	l.Draw(r)
	l.Draw(r)
	if r.fontLoads["missing.ttf"] != 1 {
		t.Errorf("loads = %d, want 1", r.fontLoads["missing.ttf"])
	}
	if len(r.commands()) != 0 {
		t.Error("a failed font should draw nothing")
	}

	l.SetFontPath("ui.ttf")
	l.Draw(r)
	if len(r.commands()) != 1 {
		t.Error("repointing the font should draw again")
	}
}

// --- Serialization ---

func TestLabelSaveLoadRoundTrip(t *testing.T) {
	l := NewLabel("title")
	l.SetText("game over")
	l.SetFontPath("ui.ttf")
	l.SetFontSize(32)
	l.SetColor(Color{1, 0, 0, 1})
	l.SetAlign(TextAlignCenter)

	dict := make(map[string]Variant)
	l.SaveToDict(dict)
	if dict["type"].AsString() != "Label" {
		t.Errorf("type = %v", dict["type"])
	}

	loaded := NewLabel("")
	loaded.LoadFromDict(dict)
	if loaded.Text() != "game over" || loaded.FontPath() != "ui.ttf" {
		t.Errorf("text = %q font = %q", loaded.Text(), loaded.FontPath())
	}
	assertNear(t, "font size", loaded.FontSize(), 32)
	if loaded.Color() != (Color{1, 0, 0, 1}) {
		t.Errorf("color = %+v", loaded.Color())
	}
	if loaded.Align() != TextAlignCenter {
		t.Errorf("align = %d", loaded.Align())
	}
}
