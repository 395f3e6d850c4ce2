// Package view turns a Record into the positioned elements of the Pokedex
// screen. Build is pure; Resolve performs the image loads; drawing belongs to
// the ui package.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nzvengeance/pokedex/internal/assets"
	"github.com/nzvengeance/pokedex/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role identifies what an element shows. The screen holds at most one header,
// height, weight, sprite and shiny element, and one element per stat row and
// loaded type icon.
type Role int

const (
	RoleHeader Role = iota
	RoleHeight
	RoleWeight
	RoleStat
	RoleTypeIcon
	RoleSprite
	RoleShinySprite
)

func (r Role) String() string {
	switch r {
	case RoleHeader:
		return "header"
	case RoleHeight:
		return "height"
	case RoleWeight:
		return "weight"
	case RoleStat:
		return "stat"
	case RoleTypeIcon:
		return "type"
	case RoleSprite:
		return "sprite"
	case RoleShinySprite:
		return "shiny"
	}
	return "role(" + strconv.Itoa(int(r)) + ")"
}

// Point is a position relative to the screen, 0..1 on both axes, used as the
// element's centre.
type Point struct {
	X, Y float32
}

// Layout, in screen fractions.
var (
	HeaderPos    = Point{0.20, 0.14}
	HeightPos    = Point{0.15, 0.40}
	WeightPos    = Point{0.15, 0.45}
	StatOrigin   = Point{0.15, 0.50}
	StatStep     = float32(0.05)
	TypeOrigin   = Point{0.60, 0.08}
	TypeStep     = float32(0.10)
	SpritePos    = Point{0.66, 0.50}
	ShinyPos     = Point{0.87, 0.81}
	TypeIconSize = assets.Size{Width: 70, Height: 50}
	SpriteSize   = assets.Size{Width: 200, Height: 200}
	ShinySize    = assets.Size{Width: 100, Height: 100}
)

const (
	HeaderTextSize      = 24
	MeasureTextSize     = 16
	StatTextSize        = 12
	PlaceholderTextSize = 12
)

// StatRow maps a displayed label to its API stat name and to the position it
// holds in the canonical stats order.
type StatRow struct {
	Label  string
	Key    string
	Offset int
}

// StatRows are always shown in this order.
var StatRows = []StatRow{
	{Label: "Attack", Key: "attack", Offset: 1},
	{Label: "Defense", Key: "defense", Offset: 2},
	{Label: "Special Attack", Key: "special-attack", Offset: 3},
	{Label: "Special Defense", Key: "special-defense", Offset: 4},
	{Label: "Speed", Key: "speed", Offset: 5},
}

// Text is a positioned label.
type Text struct {
	Role Role
	Text string
	Pos  Point
	Size float32
	Bold bool
}

// ImageRequest describes an image to load. Fallback is the placeholder text
// shown when loading fails; an empty Fallback drops the element instead.
type ImageRequest struct {
	Role     Role
	Source   string
	Remote   bool
	Size     assets.Size
	Pos      Point
	Fallback string
}

// Scene is everything the screen shows for one Record.
type Scene struct {
	RecordID int
	Texts    []Text
	Images   []ImageRequest
}

// Locator supplies asset locations; it does no I/O.
type Locator interface {
	SpriteURL(id int) string
	ShinySpriteURL(id int) string
	TypeIconPath(typeName string) string
}

// Build computes the scene for rec.
func Build(rec models.Record, loc Locator) Scene {
	scene := Scene{RecordID: rec.ID}

	scene.Texts = append(scene.Texts,
		Text{Role: RoleHeader, Text: Header(rec), Pos: HeaderPos, Size: HeaderTextSize, Bold: true},
		Text{Role: RoleHeight, Text: fmt.Sprintf("Height: %.1f m", float64(rec.HeightDecimeters)/10), Pos: HeightPos, Size: MeasureTextSize},
		Text{Role: RoleWeight, Text: fmt.Sprintf("Weight: %.1f kg", float64(rec.WeightHectograms)/10), Pos: WeightPos, Size: MeasureTextSize},
	)

	for i, row := range StatRows {
		scene.Texts = append(scene.Texts, Text{
			Role: RoleStat,
			Text: row.Label + ": " + statValue(rec, row),
			Pos:  Point{StatOrigin.X, StatOrigin.Y + float32(i)*StatStep},
			Size: StatTextSize,
		})
	}

	for i, t := range rec.Types {
		scene.Images = append(scene.Images, ImageRequest{
			Role:   RoleTypeIcon,
			Source: loc.TypeIconPath(t),
			Size:   TypeIconSize,
			Pos:    Point{TypeOrigin.X + float32(i)*TypeStep, TypeOrigin.Y},
		})
	}

	scene.Images = append(scene.Images,
		ImageRequest{
			Role:     RoleSprite,
			Source:   loc.SpriteURL(rec.ID),
			Remote:   true,
			Size:     SpriteSize,
			Pos:      SpritePos,
			Fallback: "Normal Sprite not available",
		},
		ImageRequest{
			Role:     RoleShinySprite,
			Source:   loc.ShinySpriteURL(rec.ID),
			Remote:   true,
			Size:     ShinySize,
			Pos:      ShinyPos,
			Fallback: "Shiny Sprite not available",
		},
	)

	return scene
}

// Header is the "ID: 25 - Pikachu" line.
func Header(rec models.Record) string {
	return fmt.Sprintf("ID: %d - %s", rec.ID, DisplayName(rec.Name))
}

// DisplayName title-cases an API name, keeping hyphens: "mr-mime" -> "Mr-Mime".
func DisplayName(name string) string {
	return cases.Title(language.English).String(name)
}

func statValue(rec models.Record, row StatRow) string {
	if v, ok := rec.StatByName(row.Key); ok {
		return strconv.Itoa(v)
	}
	// Unnamed stats fall back to the canonical hp, attack, defense, ... order.
	if v, ok := rec.StatAt(row.Offset); ok && rec.Stats[row.Offset].Name == "" {
		return strconv.Itoa(v)
	}
	return "?"
}

// String dumps the scene as aligned columns for debug logging.
func (s Scene) String() string {
	var rows [][3]string
	for _, t := range s.Texts {
		rows = append(rows, [3]string{t.Role.String(), t.Text, formatPoint(t.Pos)})
	}
	for _, img := range s.Images {
		rows = append(rows, [3]string{img.Role.String(), img.Source, formatPoint(img.Pos)})
	}

	var widths [2]int
	for _, r := range rows {
		for i := range widths {
			if w := runewidth.StringWidth(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "scene #%d\n", s.RecordID)
	for _, r := range rows {
		b.WriteString(runewidth.FillRight(r[0], widths[0]))
		b.WriteString("  ")
		b.WriteString(runewidth.FillRight(r[1], widths[1]))
		b.WriteString("  ")
		b.WriteString(r[2])
		b.WriteByte('\n')
	}
	return b.String()
}

func formatPoint(p Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
