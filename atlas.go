package rowan

import (
	"encoding/json"
	"fmt"
)

// AtlasRegion names a sub-rectangle of a texture file.
type AtlasRegion struct {
	TexturePath string
	Rect        Rect2 // region within the texture
	Offset      Vec2  // trim offset from the authored origin
	SourceSize  Vec2  // untrimmed sprite size as authored
	Rotated     bool  // stored 90 degrees clockwise in the atlas
}

// Atlas maps frame names to texture regions parsed from TexturePacker JSON.
// Regions reference textures by path, so an atlas is backend-free; sprites
// pointed at a region load the page through the renderer's texture cache
// like any other texture.
type Atlas struct {
	regions map[string]AtlasRegion
}

// Region returns the named region. The second result is false when the name
// is not in the atlas.
func (a *Atlas) Region(name string) (AtlasRegion, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// RegionCount returns the number of named regions.
func (a *Atlas) RegionCount() int { return len(a.regions) }

// Apply points a sprite at the named region: texture path, sub-rectangle,
// and trim offset. Returns false without touching the sprite when the name
// is missing or the region is stored rotated, which sprites cannot draw.
func (a *Atlas) Apply(s *Sprite, name string) bool {
	r, ok := a.regions[name]
	if !ok {
		debugWarnf("atlas region %q not found", name)
		return false
	}
	if r.Rotated {
		debugWarnf("atlas region %q is rotated; not supported by Sprite", name)
		return false
	}
	s.SetTexturePath(r.TexturePath)
	s.SetRegion(r.Rect)
	s.SetDrawOffset(r.Offset)
	return true
}

// LoadAtlas parses TexturePacker JSON data. Supports both the hash format
// (single "frames" object, all regions on texturePath) and the array format
// ("textures" array, each page using its own "image" value as the path).
func LoadAtlas(jsonData []byte, texturePath string) (*Atlas, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("rowan: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{regions: make(map[string]AtlasRegion)}

	if probe.Textures != nil {
		if err := parseArrayFormat(probe.Textures, texturePath, atlas); err != nil {
			return nil, err
		}
	} else if probe.Frames != nil {
		if err := parseHashFrames(probe.Frames, texturePath, atlas); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("rowan: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame            jsonRect `json:"frame"`
	Rotated          bool     `json:"rotated"`
	Trimmed          bool     `json:"trimmed"`
	SpriteSourceSize jsonRect `json:"spriteSourceSize"`
	SourceSize       jsonSize `json:"sourceSize"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// parseHashFrames parses the hash format: {"name": {frame...}, ...}
func parseHashFrames(raw json.RawMessage, texturePath string, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("rowan: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameToRegion(f, texturePath)
	}
	return nil
}

// parseArrayFormat parses the array format: [{"image":"...", "frames":{...}}, ...]
func parseArrayFormat(raw json.RawMessage, texturePath string, atlas *Atlas) error {
	var textures []jsonTexturePage
	if err := json.Unmarshal(raw, &textures); err != nil {
		return fmt.Errorf("rowan: failed to parse atlas textures array: %w", err)
	}
	for _, tex := range textures {
		path := tex.Image
		if path == "" {
			path = texturePath
		}
		for name, f := range tex.Frames {
			atlas.regions[name] = frameToRegion(f, path)
		}
	}
	return nil
}

func frameToRegion(f jsonFrame, texturePath string) AtlasRegion {
	return AtlasRegion{
		TexturePath: texturePath,
		Rect:        NewRect2(float64(f.Frame.X), float64(f.Frame.Y), float64(f.Frame.W), float64(f.Frame.H)),
		Offset:      Vec2{X: float64(f.SpriteSourceSize.X), Y: float64(f.SpriteSourceSize.Y)},
		SourceSize:  Vec2{X: float64(f.SourceSize.W), Y: float64(f.SourceSize.H)},
		Rotated:     f.Rotated,
	}
}
