package rowan

// Sprite is a spatial node that draws a texture, or a sub-rectangle of one,
// through the renderer. Textures are resolved by path on first draw and
// cached by the renderer, so sprites stay backend-free until they render.
type Sprite struct {
	Node2D

	texturePath string
	region      Rect2 // zero means the whole texture
	modulate    Color
	centered    bool
	offset      Vec2
	flipH       bool
	flipV       bool

	texture    Texture
	loadFailed bool
}

// NewSprite creates a sprite with no texture, centered, with white modulate.
func NewSprite(name string) *Sprite {
	s := &Sprite{}
	InitSprite(s, s, name)
	return s
}

// InitSprite wires the embedded Sprite of a concrete node kind.
func InitSprite(s *Sprite, self Noder, name string) {
	InitNode2D(&s.Node2D, self, name)
	s.modulate = ColorWhite
	s.centered = true
}

// TypeName returns "Sprite".
func (s *Sprite) TypeName() string { return "Sprite" }

// TexturePath returns the path the sprite draws from.
func (s *Sprite) TexturePath() string { return s.texturePath }

// SetTexturePath points the sprite at a texture by path. The texture loads
// on the next draw.
func (s *Sprite) SetTexturePath(path string) {
	if path == s.texturePath {
		return
	}
	s.texturePath = path
	s.texture = nil
	s.loadFailed = false
}

// SetTexture hands the sprite an already loaded texture.
func (s *Sprite) SetTexture(tex Texture) {
	s.texture = tex
	s.loadFailed = false
	if tex != nil {
		s.texturePath = tex.Path()
	} else {
		s.texturePath = ""
	}
}

// Region returns the texture sub-rectangle, or the zero rectangle for the
// whole texture.
func (s *Sprite) Region() Rect2 { return s.region }

// SetRegion restricts drawing to a texture sub-rectangle. The zero rectangle
// restores the whole texture.
func (s *Sprite) SetRegion(region Rect2) { s.region = region }

// Modulate returns the tint color.
func (s *Sprite) Modulate() Color { return s.modulate }

// SetModulate sets the tint color multiplied into the texture.
func (s *Sprite) SetModulate(c Color) { s.modulate = c }

// Centered reports whether the texture is centered on the node's origin.
func (s *Sprite) Centered() bool { return s.centered }

// SetCentered sets whether the texture centers on the origin; otherwise the
// top-left corner sits there.
func (s *Sprite) SetCentered(centered bool) { s.centered = centered }

// DrawOffset returns the extra local offset applied before drawing.
func (s *Sprite) DrawOffset() Vec2 { return s.offset }

// SetDrawOffset sets an extra local offset applied before drawing.
func (s *Sprite) SetDrawOffset(offset Vec2) { s.offset = offset }

// FlipH reports whether the texture is mirrored horizontally.
func (s *Sprite) FlipH() bool { return s.flipH }

// SetFlipH mirrors the texture horizontally.
func (s *Sprite) SetFlipH(flip bool) { s.flipH = flip }

// FlipV reports whether the texture is mirrored vertically.
func (s *Sprite) FlipV() bool { return s.flipV }

// SetFlipV mirrors the texture vertically.
func (s *Sprite) SetFlipV(flip bool) { s.flipV = flip }

// Draw resolves the texture and submits it with the sprite's global
// transform. A sprite with no path, or whose texture failed to load, draws
// nothing.
func (s *Sprite) Draw(r Renderer) {
	if s.texturePath == "" || s.loadFailed {
		return
	}
	if s.texture == nil {
		tex, err := r.LoadTexture(s.texturePath)
		if err != nil {
			s.loadFailed = true
			debugWarnf("sprite %q: load texture %q: %v", s.name, s.texturePath, err)
			return
		}
		s.texture = tex
	}

	size := s.texture.Size()
	if s.region.Size.X > 0 && s.region.Size.Y > 0 {
		size = s.region.Size
	}

	local := IdentityTransform2D()
	local.Origin = s.offset
	if s.flipH {
		local.X.X = -1
		local.Origin.X += size.X
	}
	if s.flipV {
		local.Y.Y = -1
		local.Origin.Y += size.Y
	}
	if s.centered {
		local.Origin = local.Origin.Sub(size.Mul(0.5))
	}

	transform := s.GlobalTransform().Mul(local)
	if s.region.Size.X > 0 && s.region.Size.Y > 0 {
		r.DrawTextureRect(s.texture, s.region, transform, s.modulate)
		return
	}
	r.DrawSprite(s.texture, transform, s.modulate)
}

// SaveToDict writes the sprite keys after the spatial keys.
func (s *Sprite) SaveToDict(dict map[string]Variant) {
	s.Node2D.SaveToDict(dict)
	dict["texture"] = VariantString(s.texturePath)
	dict["region"] = VariantRect2(s.region)
	dict["modulate"] = VariantColor(s.modulate)
	dict["centered"] = VariantBool(s.centered)
	dict["offset"] = VariantVec2(s.offset)
	dict["flip_h"] = VariantBool(s.flipH)
	dict["flip_v"] = VariantBool(s.flipV)
}

// LoadFromDict applies the sprite keys present in dict.
func (s *Sprite) LoadFromDict(dict map[string]Variant) {
	s.Node2D.LoadFromDict(dict)
	if v, ok := dict["texture"]; ok {
		s.SetTexturePath(v.AsString())
	}
	if v, ok := dict["region"]; ok {
		s.region = v.AsRect2()
	}
	if v, ok := dict["modulate"]; ok {
		s.modulate = v.AsColor()
	}
	if v, ok := dict["centered"]; ok {
		s.centered = v.AsBool()
	}
	if v, ok := dict["offset"]; ok {
		s.offset = v.AsVec2()
	}
	if v, ok := dict["flip_h"]; ok {
		s.flipH = v.AsBool()
	}
	if v, ok := dict["flip_v"]; ok {
		s.flipV = v.AsBool()
	}
}
