package ebitenx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/rowan"
)

// texture wraps an ebiten image as a rowan.Texture.
type texture struct {
	img  *ebiten.Image
	path string
}

func (t *texture) Size() rowan.Vec2 {
	b := t.img.Bounds()
	return rowan.Vec2{X: float64(b.Dx()), Y: float64(b.Dy())}
}

func (t *texture) Path() string { return t.path }

// Image returns the underlying ebiten image.
func (t *texture) Image() *ebiten.Image { return t.img }

// font wraps a text/v2 face as a rowan.Font.
type font struct {
	face *text.GoTextFace
	path string
	lh   float64
}

func (f *font) MeasureString(s string) rowan.Vec2 {
	w, h := text.Measure(s, f.face, f.lh)
	return rowan.Vec2{X: w, Y: h}
}

func (f *font) LineHeight() float64 { return f.lh }

func (f *font) Path() string { return f.path }

// fontKey caches fonts per path and size.
type fontKey struct {
	path string
	size float64
}

// Renderer implements rowan.Renderer on Ebitengine. Draw calls queue
// commands with the active view transform baked in; Flush sorts them by
// z-index and submits to a target image. Textures and fonts are cached by
// path, so repeated loads are free.
//
// The view transform is scale plus translation, so world rectangles map to
// screen rectangles and primitives stay axis-aligned.
type Renderer struct {
	queue    rowan.CommandQueue
	textures map[string]*texture
	fonts    map[fontKey]*font

	view rowan.Transform2D
	z    int
}

// NewRenderer creates a renderer with empty caches and an identity view.
func NewRenderer() *Renderer {
	return &Renderer{
		textures: make(map[string]*texture),
		fonts:    make(map[fontKey]*font),
		view:     rowan.IdentityTransform2D(),
	}
}

// LoadTexture returns the cached texture for path, reading the image file on
// first use.
func (r *Renderer) LoadTexture(path string) (rowan.Texture, error) {
	if tex, ok := r.textures[path]; ok {
		return tex, nil
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	tex := &texture{img: img, path: path}
	r.textures[path] = tex
	return tex, nil
}

// LoadFont returns the cached font for path at size, parsing the TTF/OTF
// file on first use.
func (r *Renderer) LoadFont(path string, size float64) (rowan.Font, error) {
	key := fontKey{path: path, size: size}
	if f, ok := r.fonts[key]; ok {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	f := &font{face: face, path: path, lh: m.HAscent + m.HDescent + m.HLineGap}
	r.fonts[key] = f
	return f, nil
}

// SetViewTransform sets the world-to-screen transform baked into subsequent
// draws.
func (r *Renderer) SetViewTransform(view rowan.Transform2D) { r.view = view }

// SetZIndex sets the draw order applied to subsequent commands.
func (r *Renderer) SetZIndex(z int) { r.z = z }

// viewScale returns the view's horizontal scale, used to size radii and line
// widths in screen space.
func (r *Renderer) viewScale() float64 { return r.view.X.X }

// DrawSprite queues the whole texture under the view-composed transform.
func (r *Renderer) DrawSprite(tex rowan.Texture, transform rowan.Transform2D, modulate rowan.Color) {
	r.queue.Submit(rowan.RenderCommand{
		Type:      rowan.CommandSprite,
		Texture:   tex,
		Transform: r.view.Mul(transform),
		Color:     modulate,
		ZIndex:    r.z,
	})
}

// DrawTextureRect queues the src sub-rectangle of the texture.
func (r *Renderer) DrawTextureRect(tex rowan.Texture, src rowan.Rect2, transform rowan.Transform2D, modulate rowan.Color) {
	r.queue.Submit(rowan.RenderCommand{
		Type:      rowan.CommandTextureRect,
		Texture:   tex,
		Src:       src,
		Transform: r.view.Mul(transform),
		Color:     modulate,
		ZIndex:    r.z,
	})
}

// DrawRect queues a rectangle, mapped corner-by-corner through the view.
func (r *Renderer) DrawRect(rect rowan.Rect2, c rowan.Color, filled bool) {
	pos := r.view.TransformPoint(rect.Position)
	end := r.view.TransformPoint(rect.End())
	r.queue.Submit(rowan.RenderCommand{
		Type:   rowan.CommandRect,
		Rect:   rowan.Rect2{Position: pos, Size: end.Sub(pos)},
		Color:  c,
		Filled: filled,
		ZIndex: r.z,
	})
}

// DrawCircle queues a circle with its center mapped through the view and its
// radius scaled by the view zoom.
func (r *Renderer) DrawCircle(center rowan.Vec2, radius float64, c rowan.Color, filled bool) {
	r.queue.Submit(rowan.RenderCommand{
		Type:     rowan.CommandCircle,
		Position: r.view.TransformPoint(center),
		Radius:   radius * r.viewScale(),
		Color:    c,
		Filled:   filled,
		ZIndex:   r.z,
	})
}

// DrawLine queues a line segment with both endpoints mapped through the view.
func (r *Renderer) DrawLine(from, to rowan.Vec2, c rowan.Color, width float64) {
	r.queue.Submit(rowan.RenderCommand{
		Type:     rowan.CommandLine,
		Position: r.view.TransformPoint(from),
		End:      r.view.TransformPoint(to),
		Width:    width * r.viewScale(),
		Color:    c,
		ZIndex:   r.z,
	})
}

// DrawText queues a text run with its top-left mapped through the view.
// Glyphs are rasterized at the font's loaded size and do not scale with the
// view, so text stays crisp under camera zoom.
func (r *Renderer) DrawText(f rowan.Font, s string, position rowan.Vec2, c rowan.Color) {
	r.queue.Submit(rowan.RenderCommand{
		Type:     rowan.CommandText,
		Font:     f,
		Text:     s,
		Position: r.view.TransformPoint(position),
		Color:    c,
		ZIndex:   r.z,
	})
}

// Flush sorts the queued commands by z-index and draws them to target, then
// clears the queue for the next frame.
func (r *Renderer) Flush(target *ebiten.Image) {
	r.queue.Sort()

	var op ebiten.DrawImageOptions
	cmds := r.queue.Commands()
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case rowan.CommandSprite, rowan.CommandTextureRect:
			r.submitSprite(target, cmd, &op)
		case rowan.CommandRect:
			submitRect(target, cmd)
		case rowan.CommandCircle:
			submitCircle(target, cmd)
		case rowan.CommandLine:
			submitLine(target, cmd)
		case rowan.CommandText:
			submitText(target, cmd)
		}
	}

	r.queue.Reset()
}

// submitSprite draws a sprite command using DrawImage.
func (r *Renderer) submitSprite(target *ebiten.Image, cmd *rowan.RenderCommand, op *ebiten.DrawImageOptions) {
	tex, ok := cmd.Texture.(*texture)
	if !ok || tex == nil {
		return
	}
	img := tex.img
	if cmd.Type == rowan.CommandTextureRect {
		b := img.Bounds()
		sub := image.Rect(
			b.Min.X+int(cmd.Src.Position.X), b.Min.Y+int(cmd.Src.Position.Y),
			b.Min.X+int(cmd.Src.End().X), b.Min.Y+int(cmd.Src.End().Y),
		)
		img = img.SubImage(sub).(*ebiten.Image)
	}

	op.GeoM.Reset()
	op.GeoM.Concat(geoM(cmd.Transform))
	op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	target.DrawImage(img, op)
}

func submitRect(target *ebiten.Image, cmd *rowan.RenderCommand) {
	x := float32(cmd.Rect.Position.X)
	y := float32(cmd.Rect.Position.Y)
	w := float32(cmd.Rect.Size.X)
	h := float32(cmd.Rect.Size.Y)
	if cmd.Filled {
		vector.DrawFilledRect(target, x, y, w, h, rgba(cmd.Color), true)
	} else {
		vector.StrokeRect(target, x, y, w, h, 1, rgba(cmd.Color), true)
	}
}

func submitCircle(target *ebiten.Image, cmd *rowan.RenderCommand) {
	cx := float32(cmd.Position.X)
	cy := float32(cmd.Position.Y)
	rad := float32(cmd.Radius)
	if cmd.Filled {
		vector.DrawFilledCircle(target, cx, cy, rad, rgba(cmd.Color), true)
	} else {
		vector.StrokeCircle(target, cx, cy, rad, 1, rgba(cmd.Color), true)
	}
}

func submitLine(target *ebiten.Image, cmd *rowan.RenderCommand) {
	w := float32(cmd.Width)
	if w <= 0 {
		w = 1
	}
	vector.StrokeLine(target,
		float32(cmd.Position.X), float32(cmd.Position.Y),
		float32(cmd.End.X), float32(cmd.End.Y),
		w, rgba(cmd.Color), true)
}

func submitText(target *ebiten.Image, cmd *rowan.RenderCommand) {
	f, ok := cmd.Font.(*font)
	if !ok || f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cmd.Position.X, cmd.Position.Y)
	op.LineSpacing = f.lh
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	text.Draw(target, cmd.Text, f.face, op)
}

// geoM converts a rowan.Transform2D into an ebiten.GeoM.
func geoM(t rowan.Transform2D) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t.X.X)
	m.SetElement(1, 0, t.X.Y)
	m.SetElement(0, 1, t.Y.X)
	m.SetElement(1, 1, t.Y.Y)
	m.SetElement(0, 2, t.Origin.X)
	m.SetElement(1, 2, t.Origin.Y)
	return m
}

// rgba converts a rowan color to a premultiplied color.RGBA.
func rgba(c rowan.Color) color.RGBA {
	a := rowan.Clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(rowan.Clamp(c.R, 0, 1) * a * 255),
		G: uint8(rowan.Clamp(c.G, 0, 1) * a * 255),
		B: uint8(rowan.Clamp(c.B, 0, 1) * a * 255),
		A: uint8(a * 255),
	}
}
