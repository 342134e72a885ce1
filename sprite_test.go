package rowan

import "testing"

// --- Drawing ---

func TestSpriteDrawsCenteredWholeTexture(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetPosition(Vec2{100, 100})

	s.Draw(r)
	cmds := r.commands()
	if len(cmds) != 1 || cmds[0].Type != CommandSprite {
		t.Fatalf("commands = %+v", cmds)
	}
	if cmds[0].Texture.Path() != "hero.png" {
		t.Errorf("texture = %q", cmds[0].Texture.Path())
	}
	// Centered: the 64x64 fake texture hangs half a size up-left.
	assertVec2Near(t, "origin", cmds[0].Transform.Origin, Vec2{68, 68})
	assertVec2Near(t, "basis x", cmds[0].Transform.X, Vec2{1, 0})
	if cmds[0].Color != ColorWhite {
		t.Errorf("modulate = %+v", cmds[0].Color)
	}
}

func TestSpriteDrawsAtOriginWhenNotCentered(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetCentered(false)
	s.SetPosition(Vec2{10, 20})

	s.Draw(r)
	assertVec2Near(t, "origin", r.commands()[0].Transform.Origin, Vec2{10, 20})
}

func TestSpriteDrawOffset(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetCentered(false)
	s.SetDrawOffset(Vec2{5, 5})
	s.SetPosition(Vec2{10, 20})

	s.Draw(r)
	assertVec2Near(t, "origin", r.commands()[0].Transform.Origin, Vec2{15, 25})
}

func TestSpriteScaleAppliesToDraw(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetScale(Vec2{2, 2})

	s.Draw(r)
	cmd := r.commands()[0]
	assertVec2Near(t, "basis x", cmd.Transform.X, Vec2{2, 0})
	// The centering offset scales with the node.
	assertVec2Near(t, "origin", cmd.Transform.Origin, Vec2{-64, -64})
}

func TestSpriteRegionDrawsSubRectangle(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("atlas.png")
	region := NewRect2(16, 16, 32, 16)
	s.SetRegion(region)

	s.Draw(r)
	cmds := r.commands()
	if len(cmds) != 1 || cmds[0].Type != CommandTextureRect {
		t.Fatalf("commands = %+v", cmds)
	}
	if cmds[0].Src != region {
		t.Errorf("src = %+v", cmds[0].Src)
	}
	// Centering uses the region size, not the texture size.
	assertVec2Near(t, "origin", cmds[0].Transform.Origin, Vec2{-16, -8})
}

func TestSpriteFlipH(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetFlipH(true)

	s.Draw(r)
	cmd := r.commands()[0]
	assertVec2Near(t, "basis x", cmd.Transform.X, Vec2{-1, 0})
	// Mirroring shifts the origin a full width right before centering.
	assertVec2Near(t, "origin", cmd.Transform.Origin, Vec2{32, -32})
}

func TestSpriteFlipV(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetFlipV(true)

	s.Draw(r)
	cmd := r.commands()[0]
	assertVec2Near(t, "basis y", cmd.Transform.Y, Vec2{0, -1})
	assertVec2Near(t, "origin", cmd.Transform.Origin, Vec2{-32, 32})
}

// --- Texture loading ---

func TestSpriteTextureLoadsOnceAndCaches(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")

	s.Draw(r)
	s.Draw(r)
	if r.textureLoads["hero.png"] != 1 {
		t.Errorf("loads = %d, want 1", r.textureLoads["hero.png"])
	}
	if len(r.commands()) != 2 {
		t.Errorf("commands = %d, want 2", len(r.commands()))
	}
}

func TestSpriteLoadFailureIsLatched(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")
	s.SetTexturePath("missing.png")

	s.Draw(r)
	s.Draw(r)
	if r.textureLoads["missing.png"] != 1 {
		t.Errorf("loads = %d, want 1", r.textureLoads["missing.png"])
	}
	if len(r.commands()) != 0 {
		t.Errorf("commands = %d, want 0", len(r.commands()))
	}

	// Repointing the sprite clears the latch.
	s.SetTexturePath("hero.png")
	s.Draw(r)
	if len(r.commands()) != 1 {
		t.Errorf("commands = %d after repoint, want 1", len(r.commands()))
	}
}

func TestSpriteEmptyPathDrawsNothing(t *testing.T) {
	r := newRecordingRenderer()
	s := NewSprite("hero")

	s.Draw(r)
	if len(r.commands()) != 0 || len(r.textureLoads) != 0 {
		t.Error("a sprite with no texture should not draw or load")
	}
}

func TestSpriteSetTexture(t *testing.T) {
	s := NewSprite("hero")
	s.SetTexture(&fakeTexture{path: "pre.png", size: Vec2{8, 8}})
	if s.TexturePath() != "pre.png" {
		t.Errorf("path = %q", s.TexturePath())
	}

	r := newRecordingRenderer()
	s.Draw(r)
	if len(r.textureLoads) != 0 {
		t.Error("a preloaded texture should not hit the loader")
	}
	if len(r.commands()) != 1 {
		t.Fatalf("commands = %d, want 1", len(r.commands()))
	}

	s.SetTexture(nil)
	s.Draw(r)
	if len(r.commands()) != 1 {
		t.Error("clearing the texture should stop drawing")
	}
}

// --- Serialization ---

func TestSpriteSaveLoadRoundTrip(t *testing.T) {
	s := NewSprite("hero")
	s.SetTexturePath("hero.png")
	s.SetRegion(NewRect2(1, 2, 3, 4))
	s.SetModulate(Color{1, 0.5, 0.25, 1})
	s.SetCentered(false)
	s.SetDrawOffset(Vec2{7, 8})
	s.SetFlipH(true)

	dict := make(map[string]Variant)
	s.SaveToDict(dict)
	if dict["type"].AsString() != "Sprite" {
		t.Errorf("type = %v", dict["type"])
	}

	loaded := NewSprite("")
	loaded.LoadFromDict(dict)
	if loaded.TexturePath() != "hero.png" {
		t.Errorf("texture = %q", loaded.TexturePath())
	}
	if loaded.Region() != NewRect2(1, 2, 3, 4) {
		t.Errorf("region = %+v", loaded.Region())
	}
	if loaded.Modulate() != (Color{1, 0.5, 0.25, 1}) {
		t.Errorf("modulate = %+v", loaded.Modulate())
	}
	if loaded.Centered() {
		t.Error("centered should load as false")
	}
	assertVec2Near(t, "offset", loaded.DrawOffset(), Vec2{7, 8})
	if !loaded.FlipH() || loaded.FlipV() {
		t.Error("flips should round trip")
	}
}
