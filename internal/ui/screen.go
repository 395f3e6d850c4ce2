package ui

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/rs/zerolog/log"

	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/nzvengeance/pokedex/internal/view"
)

var (
	labelBackground = color.NRGBA{R: 0x95, G: 0xe2, B: 0xfe, A: 0xff}
	spriteBackdrop  = color.NRGBA{R: 0xb7, G: 0xea, B: 0xff, A: 0xff}
	labelForeground = color.Black
)

// Screen is the record area of the window. Render is the only place that
// changes what it shows.
type Screen struct {
	content *fyne.Container
	layout  *RelativeLayout
	locator view.Locator
	loader  view.ImageLoader
	frame   view.Frame
	roles   map[fyne.CanvasObject]view.Role
}

func NewScreen(locator view.Locator, loader view.ImageLoader) *Screen {
	l := NewRelativeLayout()
	return &Screen{
		content: container.New(l),
		layout:  l,
		locator: locator,
		loader:  loader,
		roles:   make(map[fyne.CanvasObject]view.Role),
	}
}

// Content is the canvas object to put in the window.
func (s *Screen) Content() fyne.CanvasObject { return s.content }

// Show builds, resolves and renders rec. It implements session.Display.
func (s *Screen) Show(ctx context.Context, rec models.Record) {
	scene := view.Build(rec, s.locator)
	log.Debug().Int("id", rec.ID).Stringer("scene", scene).Msg("scene built")
	s.Render(view.Resolve(ctx, scene, s.loader))
}

// Render swaps every object on the screen for the elements of frame.
func (s *Screen) Render(frame view.Frame) {
	objects := make([]fyne.CanvasObject, 0, len(frame.Elements))
	roles := make(map[fyne.CanvasObject]view.Role, len(frame.Elements))

	s.layout.Reset()
	for _, e := range frame.Elements {
		obj, size := newElementObject(e)
		s.layout.Place(obj, Placement{Pos: e.Pos, Size: size})
		roles[obj] = e.Role
		objects = append(objects, obj)
	}

	s.content.Objects = objects
	s.roles = roles
	s.frame = frame
	s.content.Refresh()

	log.Debug().Int("id", frame.RecordID).Int("objects", len(objects)).Msg("screen rendered")
}

// Frame is the frame currently on screen.
func (s *Screen) Frame() view.Frame { return s.frame }

// Objects returns the objects on screen with the given role.
func (s *Screen) Objects(role view.Role) []fyne.CanvasObject {
	var out []fyne.CanvasObject
	for _, obj := range s.content.Objects {
		if s.roles[obj] == role {
			out = append(out, obj)
		}
	}
	return out
}

func newElementObject(e view.Element) (fyne.CanvasObject, fyne.Size) {
	if e.IsImage() {
		size := fyne.NewSize(float32(e.Size.Width), float32(e.Size.Height))
		img := canvas.NewImageFromImage(e.Image)
		img.FillMode = canvas.ImageFillContain
		img.ScaleMode = canvas.ImageScalePixels
		img.SetMinSize(size)
		if e.Role == view.RoleTypeIcon {
			return img, size
		}
		backdrop := canvas.NewRectangle(spriteBackdrop)
		backdrop.SetMinSize(size)
		return container.NewStack(backdrop, img), size
	}

	text := canvas.NewText(e.Text, labelForeground)
	text.TextSize = e.TextSize
	text.TextStyle = fyne.TextStyle{Bold: e.Bold, Monospace: true}
	bg := canvas.NewRectangle(labelBackground)
	return container.NewStack(bg, container.NewPadded(text)), fyne.Size{}
}

// TextOf returns the label text of a text object built by Render.
func TextOf(obj fyne.CanvasObject) string {
	switch o := obj.(type) {
	case *canvas.Text:
		return o.Text
	case *fyne.Container:
		for _, child := range o.Objects {
			if t := TextOf(child); t != "" {
				return t
			}
		}
	}
	return ""
}
