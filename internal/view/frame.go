package view

import (
	"context"
	"image"

	"github.com/nzvengeance/pokedex/internal/assets"
)

// ImageLoader is the subset of assets.Loader that Resolve needs.
type ImageLoader interface {
	LoadRemote(ctx context.Context, url string, size assets.Size) *assets.Asset
	LoadLocal(path string, size assets.Size) *assets.Asset
}

// Element is one drawable item of a resolved scene: either an image or a
// text (a label, or the placeholder of an image that failed to load).
type Element struct {
	Role     Role
	Pos      Point
	Text     string
	TextSize float32
	Bold     bool
	Image    image.Image
	Size     assets.Size
}

func (e Element) IsImage() bool { return e.Image != nil }

// Frame is a scene with its images loaded, ready to draw.
type Frame struct {
	RecordID int
	Elements []Element
}

// Count returns how many elements have the given role.
func (f Frame) Count(role Role) int {
	n := 0
	for _, e := range f.Elements {
		if e.Role == role {
			n++
		}
	}
	return n
}

// Resolve loads every image of scene once. Type icons that fail to load are
// dropped and the remaining ones close up from TypeOrigin; sprites that fail
// become their placeholder text.
func Resolve(ctx context.Context, scene Scene, loader ImageLoader) Frame {
	frame := Frame{RecordID: scene.RecordID}

	for _, t := range scene.Texts {
		frame.Elements = append(frame.Elements, Element{
			Role:     t.Role,
			Pos:      t.Pos,
			Text:     t.Text,
			TextSize: t.Size,
			Bold:     t.Bold,
		})
	}

	typeSlot := 0
	for _, req := range scene.Images {
		var asset *assets.Asset
		if req.Remote {
			asset = loader.LoadRemote(ctx, req.Source, req.Size)
		} else {
			asset = loader.LoadLocal(req.Source, req.Size)
		}

		pos := req.Pos
		if req.Role == RoleTypeIcon {
			if asset == nil {
				continue
			}
			pos = Point{TypeOrigin.X + float32(typeSlot)*TypeStep, TypeOrigin.Y}
			typeSlot++
		}

		switch {
		case asset != nil:
			frame.Elements = append(frame.Elements, Element{Role: req.Role, Pos: pos, Image: asset.Image, Size: req.Size})
		case req.Fallback != "":
			frame.Elements = append(frame.Elements, Element{Role: req.Role, Pos: pos, Text: req.Fallback, TextSize: PlaceholderTextSize, Size: req.Size})
		}
	}

	return frame
}
