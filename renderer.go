package rowan

// Texture is a handle to an image resource loaded by a Renderer.
// Renderers cache textures by path, so repeated loads return the same handle.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() Vec2
	// Path returns the path the texture was loaded from.
	Path() string
}

// Font is a handle to a font face loaded by a Renderer at a fixed size.
// Renderers cache fonts by path and size.
type Font interface {
	// MeasureString returns the rendered size of s in pixels.
	MeasureString(s string) Vec2
	// LineHeight returns the vertical advance between baselines.
	LineHeight() float64
	// Path returns the path the font was loaded from.
	Path() string
}

// Renderer is the drawing contract node Draw hooks run against. A renderer
// owns resource caches, the active view transform, and the z-index applied
// to subsequent draws. Implementations queue commands and execute them in
// z order when the frame is flushed; rowan/ebitenx provides one built on
// Ebitengine.
type Renderer interface {
	// LoadTexture returns the texture at path, loading it on first use.
	LoadTexture(path string) (Texture, error)
	// LoadFont returns the font at path rendered at size points, loading it
	// on first use.
	LoadFont(path string, size float64) (Font, error)

	// SetViewTransform sets the world-to-screen transform applied to
	// subsequent draws. The engine sets it from the current camera each
	// frame; identity means world coordinates are screen coordinates.
	SetViewTransform(view Transform2D)
	// SetZIndex sets the draw order for subsequent commands. Higher values
	// draw later. Within one z-index, submission order is preserved.
	SetZIndex(z int)

	// DrawSprite draws the whole texture with the given local-to-world
	// transform and modulate color.
	DrawSprite(tex Texture, transform Transform2D, modulate Color)
	// DrawTextureRect draws the src sub-rectangle of the texture.
	DrawTextureRect(tex Texture, src Rect2, transform Transform2D, modulate Color)
	// DrawRect draws a rectangle in world coordinates, filled or outlined.
	DrawRect(rect Rect2, color Color, filled bool)
	// DrawCircle draws a circle in world coordinates, filled or outlined.
	DrawCircle(center Vec2, radius float64, color Color, filled bool)
	// DrawLine draws a line segment in world coordinates.
	DrawLine(from, to Vec2, color Color, width float64)
	// DrawText draws a string with its top-left at position.
	DrawText(font Font, text string, position Vec2, color Color)
}

// RenderCommandType identifies the kind of queued draw command.
type RenderCommandType uint8

const (
	CommandSprite      RenderCommandType = iota // full texture
	CommandTextureRect                          // texture sub-rectangle
	CommandRect                                 // rectangle primitive
	CommandCircle                               // circle primitive
	CommandLine                                 // line segment
	CommandText                                 // text run
)

// RenderCommand is a single queued draw instruction. Only the fields
// relevant to Type are meaningful.
type RenderCommand struct {
	Type      RenderCommandType
	Texture   Texture
	Font      Font
	Src       Rect2       // texture sub-rectangle (CommandTextureRect)
	Rect      Rect2       // rectangle bounds (CommandRect)
	Transform Transform2D // local-to-world transform (sprite commands)
	Color     Color
	Position  Vec2    // circle center, line start, or text origin
	End       Vec2    // line end
	Radius    float64 // circle radius
	Width     float64 // line width
	Filled    bool    // filled vs outlined primitives
	Text      string
	ZIndex    int

	seq int // submission order, for stable sorting
}

// CommandQueue accumulates render commands for one frame and orders them by
// z-index, preserving submission order within a z level. Backends submit
// from Draw hooks, then sort and execute. The queue reuses its buffers
// across frames.
type CommandQueue struct {
	commands []RenderCommand
	sortBuf  []RenderCommand
}

// Submit appends a command to the queue.
func (q *CommandQueue) Submit(cmd RenderCommand) {
	cmd.seq = len(q.commands)
	q.commands = append(q.commands, cmd)
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int { return len(q.commands) }

// Commands returns the queued commands in their current order.
// The returned slice MUST NOT be mutated by the caller.
func (q *CommandQueue) Commands() []RenderCommand { return q.commands }

// Reset clears the queue for the next frame, keeping capacity.
func (q *CommandQueue) Reset() {
	q.commands = q.commands[:0]
}

// commandLessOrEqual reports whether a sorts before or at the same position
// as b. Using <= on seq keeps the sort stable.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.ZIndex != b.ZIndex {
		return a.ZIndex < b.ZIndex
	}
	return a.seq <= b.seq
}

// Sort orders the queue by z-index using a bottom-up merge sort over a
// reused scratch buffer: stable and allocation-free once the buffer reaches
// its high-water mark.
func (q *CommandQueue) Sort() {
	n := len(q.commands)
	if n <= 1 {
		return
	}
	if cap(q.sortBuf) < n {
		q.sortBuf = make([]RenderCommand, n)
	}
	q.sortBuf = q.sortBuf[:n]

	a := q.commands
	b := q.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := lo + width
			if mid > n {
				mid = n
			}
			hi := lo + 2*width
			if hi > n {
				hi = n
			}
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(q.commands, q.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
