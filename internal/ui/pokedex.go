package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"github.com/nzvengeance/pokedex/internal/assets"
	"github.com/nzvengeance/pokedex/internal/config"
	"github.com/nzvengeance/pokedex/internal/session"
	"github.com/nzvengeance/pokedex/internal/view"
)

const appName = "Pokedex"

// AssetSource is what the window needs from the asset loader.
type AssetSource interface {
	view.Locator
	view.ImageLoader
	BackgroundPath() string
}

// Pokedex is the main window: background, record screen and controls.
type Pokedex struct {
	window  fyne.Window
	screen  *Screen
	session *session.Session

	entry      *widget.Entry
	searchBtn  *widget.Button
	prevBtn    *widget.Button
	nextBtn    *widget.Button
	background fyne.CanvasObject
}

func NewPokedex(a fyne.App, cfg *config.Config, fetcher session.Fetcher, source AssetSource) *Pokedex {
	p := &Pokedex{}

	p.window = a.NewWindow(appName)
	p.window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	p.window.CenterOnScreen()
	p.window.SetFullScreen(cfg.Fullscreen)
	p.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", fyne.NewMenuItem("Quit", func() { a.Quit() })),
	))

	p.screen = NewScreen(source, source)
	p.session = session.New(fetcher, p.screen, NewDialogNotifier(p.window), cfg.StartID)
	p.background = newBackground(source, cfg.WindowWidth, cfg.WindowHeight)

	p.entry = widget.NewEntry()
	p.entry.SetPlaceHolder("Name or number")
	p.entry.OnSubmitted = func(text string) { p.Search(text) }
	p.searchBtn = widget.NewButton("Search", func() { p.Search(p.entry.Text) })
	p.prevBtn = widget.NewButton("Previous", p.Previous)
	p.nextBtn = widget.NewButton("Next", p.Next)

	controlsLayout := NewRelativeLayout()
	controls := container.New(controlsLayout, p.entry, p.searchBtn, p.prevBtn, p.nextBtn)
	controlsLayout.Place(p.entry, Placement{Pos: view.Point{X: 0.30, Y: 0.87}, Size: fyne.NewSize(220, 36)})
	controlsLayout.Place(p.searchBtn, Placement{Pos: view.Point{X: 0.30, Y: 0.95}})
	controlsLayout.Place(p.prevBtn, Placement{Pos: view.Point{X: 0.50, Y: 0.95}})
	controlsLayout.Place(p.nextBtn, Placement{Pos: view.Point{X: 0.65, Y: 0.95}})

	p.window.SetContent(container.NewStack(p.background, p.screen.Content(), controls))
	p.window.SetMaster()

	log.Info().Str("session", p.session.ID().String()).Msg("pokedex window created")
	return p
}

// newBackground loads the background image, or falls back to the theme colour.
func newBackground(source AssetSource, width, height float32) fyne.CanvasObject {
	size := assets.Size{Width: int(width), Height: int(height)}
	if bg := source.LoadLocal(source.BackgroundPath(), size); bg != nil {
		img := canvas.NewImageFromImage(bg.Image)
		img.FillMode = canvas.ImageFillStretch
		return img
	}
	return canvas.NewRectangle(theme.Color(theme.ColorNameBackground))
}

func (p *Pokedex) Window() fyne.Window { return p.window }
func (p *Pokedex) Screen() *Screen { return p.screen }
func (p *Pokedex) Session() *session.Session { return p.session }
func (p *Pokedex) Entry() *widget.Entry { return p.entry }
func (p *Pokedex) Buttons() []*widget.Button { return []*widget.Button{p.searchBtn, p.prevBtn, p.nextBtn} }
func (p *Pokedex) Background() fyne.CanvasObject { return p.background }

// The handlers below run on the UI goroutine and block it until the fetch and
// render finish. Errors have already been shown to the user by the session.

func (p *Pokedex) Start() { _ = p.session.Start(context.Background()) }

func (p *Pokedex) Next() { _ = p.session.Next(context.Background()) }

func (p *Pokedex) Previous() { _ = p.session.Previous(context.Background()) }

func (p *Pokedex) Search(text string) { _ = p.session.Search(context.Background(), text) }

// ShowAndRun shows the start record and enters the event loop.
func (p *Pokedex) ShowAndRun() {
	p.Start()
	p.window.ShowAndRun()
}
