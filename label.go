package rowan

// TextAlign controls horizontal text alignment relative to a Label's origin.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // origin at the left edge (default)
	TextAlignCenter                  // origin at the horizontal center
	TextAlignRight                   // origin at the right edge
)

// defaultFontSize is the point size a Label uses when none is set.
const defaultFontSize = 16

// Label is a spatial node that draws a single run of text. Fonts load by
// path and size through the renderer on first draw; what an empty font path
// resolves to is up to the renderer (ebitenx has no default face and fails
// the load, which silences the label).
type Label struct {
	Node2D

	text     string
	fontPath string
	fontSize float64
	color    Color
	align    TextAlign

	font       Font
	loadFailed bool
}

// NewLabel creates an empty white label with the default font size.
func NewLabel(name string) *Label {
	l := &Label{}
	InitLabel(l, l, name)
	return l
}

// InitLabel wires the embedded Label of a concrete node kind.
func InitLabel(l *Label, self Noder, name string) {
	InitNode2D(&l.Node2D, self, name)
	l.fontSize = defaultFontSize
	l.color = ColorWhite
}

// TypeName returns "Label".
func (l *Label) TypeName() string { return "Label" }

// Text returns the displayed string.
func (l *Label) Text() string { return l.text }

// SetText sets the displayed string.
func (l *Label) SetText(text string) { l.text = text }

// FontPath returns the font path, or "" when none is set.
func (l *Label) FontPath() string { return l.fontPath }

// SetFontPath points the label at a font by path. The font loads on the
// next draw.
func (l *Label) SetFontPath(path string) {
	if path == l.fontPath {
		return
	}
	l.fontPath = path
	l.font = nil
	l.loadFailed = false
}

// FontSize returns the point size.
func (l *Label) FontSize() float64 { return l.fontSize }

// SetFontSize sets the point size and reloads the font on the next draw.
func (l *Label) SetFontSize(size float64) {
	if size == l.fontSize {
		return
	}
	l.fontSize = size
	l.font = nil
	l.loadFailed = false
}

// Color returns the text color.
func (l *Label) Color() Color { return l.color }

// SetColor sets the text color.
func (l *Label) SetColor(c Color) { l.color = c }

// Align returns the horizontal alignment.
func (l *Label) Align() TextAlign { return l.align }

// SetAlign sets the horizontal alignment relative to the node's origin.
func (l *Label) SetAlign(align TextAlign) { l.align = align }

// Draw resolves the font and submits the text at the label's global
// position. Rotation and scale are not applied to text.
func (l *Label) Draw(r Renderer) {
	if l.text == "" || l.loadFailed {
		return
	}
	if l.font == nil {
		font, err := r.LoadFont(l.fontPath, l.fontSize)
		if err != nil {
			l.loadFailed = true
			debugWarnf("label %q: load font %q: %v", l.name, l.fontPath, err)
			return
		}
		l.font = font
	}

	pos := l.GlobalTransform().Origin
	switch l.align {
	case TextAlignCenter:
		pos.X -= l.font.MeasureString(l.text).X / 2
	case TextAlignRight:
		pos.X -= l.font.MeasureString(l.text).X
	}
	r.DrawText(l.font, l.text, pos, l.color)
}

// SaveToDict writes the label keys after the spatial keys.
func (l *Label) SaveToDict(dict map[string]Variant) {
	l.Node2D.SaveToDict(dict)
	dict["text"] = VariantString(l.text)
	dict["font"] = VariantString(l.fontPath)
	dict["font_size"] = VariantFloat(l.fontSize)
	dict["color"] = VariantColor(l.color)
	dict["align"] = VariantInt(int(l.align))
}

// LoadFromDict applies the label keys present in dict.
func (l *Label) LoadFromDict(dict map[string]Variant) {
	l.Node2D.LoadFromDict(dict)
	if v, ok := dict["text"]; ok {
		l.text = v.AsString()
	}
	if v, ok := dict["font"]; ok {
		l.SetFontPath(v.AsString())
	}
	if v, ok := dict["font_size"]; ok {
		l.SetFontSize(v.AsFloat())
	}
	if v, ok := dict["color"]; ok {
		l.color = v.AsColor()
	}
	if v, ok := dict["align"]; ok {
		l.align = TextAlign(v.AsInt())
	}
}
