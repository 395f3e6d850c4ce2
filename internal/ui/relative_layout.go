package ui

import (
	"fyne.io/fyne/v2"

	"github.com/nzvengeance/pokedex/internal/view"
)

// Placement centres an object on a point given in container fractions. A zero
// Size means the object's MinSize.
type Placement struct {
	Pos  view.Point
	Size fyne.Size
}

// RelativeLayout places each object by its Placement. Objects without one are
// stretched over the whole container, which is how the background is drawn.
type RelativeLayout struct {
	placements map[fyne.CanvasObject]Placement
}

func NewRelativeLayout() *RelativeLayout {
	return &RelativeLayout{placements: make(map[fyne.CanvasObject]Placement)}
}

// Place records where obj goes. It takes effect on the next Layout.
func (l *RelativeLayout) Place(obj fyne.CanvasObject, p Placement) {
	l.placements[obj] = p
}

// Reset forgets every placement.
func (l *RelativeLayout) Reset() {
	l.placements = make(map[fyne.CanvasObject]Placement)
}

// PlacementOf reports the placement recorded for obj.
func (l *RelativeLayout) PlacementOf(obj fyne.CanvasObject) (Placement, bool) {
	p, ok := l.placements[obj]
	return p, ok
}

func (l *RelativeLayout) Layout(objects []fyne.CanvasObject, containerSize fyne.Size) {
	for _, obj := range objects {
		p, ok := l.placements[obj]
		if !ok {
			obj.Resize(containerSize)
			obj.Move(fyne.NewPos(0, 0))
			continue
		}

		size := p.Size
		if size.IsZero() {
			size = obj.MinSize()
		}
		obj.Resize(size)
		x := p.Pos.X*containerSize.Width - size.Width/2
		y := p.Pos.Y*containerSize.Height - size.Height/2
		obj.Move(fyne.NewPos(x, y))
	}
}

// MinSize is zero: positions are fractions of whatever size the window has.
func (l *RelativeLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
