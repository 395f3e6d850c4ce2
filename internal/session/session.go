// Package session holds the navigation state of one Pokedex window: the
// current id, the record on screen, and the fetch/render cycle triggered by
// Next, Previous and Search. Every call runs to completion on the caller's
// goroutine.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	ErrorTitle      = "Error"
	NotFoundMessage = "Pokemon not found."
	InputTitle      = "Input Error"
	EmptySearchText = "Please enter a Pokemon name."
)

type Fetcher interface {
	Fetch(ctx context.Context, identifier string) (models.Record, error)
	FetchByID(ctx context.Context, id int) (models.Record, error)
}

// Display replaces everything on screen with rec.
type Display interface {
	Show(ctx context.Context, rec models.Record)
}

// Notifier surfaces blocking messages to the user.
type Notifier interface {
	ShowError(title, message string, err error)
	ShowWarning(title, message string)
}

type State int

const (
	StateIdle State = iota
	StateFetching
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateRendering:
		return "rendering"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

type Session struct {
	id       ulid.ULID
	log      zerolog.Logger
	fetcher  Fetcher
	display  Display
	notifier Notifier

	startID int
	cursor  int
	current *models.Record
	state   State
}

func New(fetcher Fetcher, display Display, notifier Notifier, startID int) *Session {
	if startID < 1 {
		startID = 1
	}
	id := ulid.Make()
	return &Session{
		id:       id,
		log:      log.With().Str("session", id.String()).Logger(),
		fetcher:  fetcher,
		display:  display,
		notifier: notifier,
		startID:  startID,
		cursor:   startID,
	}
}

func (s *Session) ID() ulid.ULID { return s.id }

// Cursor is the id of the record on screen, or the start id before the
// first successful fetch.
func (s *Session) Cursor() int { return s.cursor }

func (s *Session) State() State { return s.state }

// Current returns the record on screen.
func (s *Session) Current() (models.Record, bool) {
	if s.current == nil {
		return models.Record{}, false
	}
	return *s.current, true
}

// Start shows the start id.
func (s *Session) Start(ctx context.Context) error {
	return s.showID(ctx, "start", s.startID)
}

// Next shows the record after the cursor. The cursor only moves on success,
// so Next on a missing id keeps failing on that id until the user searches.
func (s *Session) Next(ctx context.Context) error {
	return s.showID(ctx, "next", s.cursor+1)
}

// Previous shows the record before the cursor; at id 1 it does nothing.
func (s *Session) Previous(ctx context.Context) error {
	if s.cursor <= 1 {
		s.log.Debug().Int("cursor", s.cursor).Msg("already at first pokemon")
		return nil
	}
	return s.showID(ctx, "previous", s.cursor-1)
}

// Search shows the record for a name or id typed by the user.
func (s *Session) Search(ctx context.Context, text string) error {
	identifier := strings.ToLower(strings.TrimSpace(text))
	if identifier == "" {
		s.log.Info().Msg("search with empty input")
		s.notifier.ShowWarning(InputTitle, EmptySearchText)
		return fmt.Errorf("search: empty input")
	}
	return s.show(ctx, "search", identifier, func(ctx context.Context) (models.Record, error) {
		return s.fetcher.Fetch(ctx, identifier)
	})
}

func (s *Session) showID(ctx context.Context, action string, id int) error {
	return s.show(ctx, action, strconv.Itoa(id), func(ctx context.Context) (models.Record, error) {
		return s.fetcher.FetchByID(ctx, id)
	})
}

// show runs one Idle -> Fetching -> Rendering -> Idle cycle. A failed fetch
// goes straight back to Idle with one notification and nothing changed.
func (s *Session) show(ctx context.Context, action, identifier string, fetch func(context.Context) (models.Record, error)) error {
	s.state = StateFetching
	defer func() { s.state = StateIdle }()

	s.log.Info().Str("action", action).Str("identifier", identifier).Msg("fetching")

	rec, err := fetch(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("action", action).Str("identifier", identifier).Int("cursor", s.cursor).Msg("fetch failed")
		s.notifier.ShowError(ErrorTitle, NotFoundMessage, err)
		return fmt.Errorf("%s %s: %w", action, identifier, err)
	}

	s.state = StateRendering
	s.cursor = rec.ID
	s.current = &rec
	s.display.Show(ctx, rec)

	s.log.Info().Str("action", action).Int("id", rec.ID).Str("name", rec.Name).Msg("displayed")
	return nil
}
