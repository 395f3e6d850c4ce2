package session

import (
	"context"
	"testing"

	"github.com/nzvengeance/pokedex/internal/models"
	"github.com/nzvengeance/pokedex/internal/pokeapi"
	"github.com/nzvengeance/pokedex/internal/pokeapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) ShowError(title, message string, err error) {
	m.Called(title, message, err)
}

func (m *mockNotifier) ShowWarning(title, message string) {
	m.Called(title, message)
}

type recordingDisplay struct {
	shown []models.Record
}

func (d *recordingDisplay) Show(_ context.Context, rec models.Record) {
	d.shown = append(d.shown, rec)
}

func (d *recordingDisplay) last(t *testing.T) models.Record {
	t.Helper()
	require.NotEmpty(t, d.shown)
	return d.shown[len(d.shown)-1]
}

// stateSpy checks which state the session is in while fetching.
type stateSpy struct {
	inner    Fetcher
	session  *Session
	observed []State
}

func (p *stateSpy) Fetch(ctx context.Context, identifier string) (models.Record, error) {
	p.observed = append(p.observed, p.session.State())
	return p.inner.Fetch(ctx, identifier)
}

func (p *stateSpy) FetchByID(ctx context.Context, id int) (models.Record, error) {
	p.observed = append(p.observed, p.session.State())
	return p.inner.FetchByID(ctx, id)
}

func newTestSession(t *testing.T, startID int) (*Session, *recordingDisplay, *mockNotifier, *pokeapitest.Server) {
	t.Helper()
	srv := pokeapitest.NewServer(t)
	for _, p := range []pokeapitest.Pokemon{
		pokeapitest.Bulbasaur(), pokeapitest.Ivysaur(), pokeapitest.Venusaur(), pokeapitest.Pikachu(),
	} {
		srv.AddPokemon(p)
	}
	client := pokeapi.NewClient(srv.APIBaseURL(), 100, 10)
	display := &recordingDisplay{}
	notifier := &mockNotifier{}
	t.Cleanup(func() { notifier.AssertExpectations(t) })
	return New(client, display, notifier, startID), display, notifier, srv
}

func TestSession_Start(t *testing.T) {
	s, display, _, _ := newTestSession(t, 1)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 1, s.Cursor())
	assert.Equal(t, "bulbasaur", display.last(t).Name)
	assert.Equal(t, StateIdle, s.State())
	assert.NotZero(t, s.ID())
}

func TestSession_NextThenPreviousReturnsToSameRecord(t *testing.T) {
	s, display, _, _ := newTestSession(t, 2)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.Next(ctx))
	assert.Equal(t, 3, s.Cursor())
	assert.Equal(t, "venusaur", display.last(t).Name)

	require.NoError(t, s.Previous(ctx))
	assert.Equal(t, 2, s.Cursor())
	assert.Equal(t, "ivysaur", display.last(t).Name)
}

func TestSession_PreviousAtFirstIsNoop(t *testing.T) {
	s, display, _, srv := newTestSession(t, 1)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.Previous(ctx))
	assert.Equal(t, 1, s.Cursor())
	assert.Len(t, display.shown, 1)
	assert.Equal(t, 0, srv.Hits("/api/v2/pokemon/0"))
}

func TestSession_Search(t *testing.T) {
	s, display, _, _ := newTestSession(t, 1)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	require.NoError(t, s.Search(ctx, "  Pikachu "))
	assert.Equal(t, 25, s.Cursor())
	assert.Equal(t, 25, display.last(t).ID)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "pikachu", cur.Name)
}

func TestSession_SearchByID(t *testing.T) {
	s, display, _, _ := newTestSession(t, 1)

	require.NoError(t, s.Search(context.Background(), "3"))
	assert.Equal(t, 3, s.Cursor())
	assert.Equal(t, "venusaur", display.last(t).Name)
}

func TestSession_FailedFetchLeavesDisplayUnchanged(t *testing.T) {
	testCases := []struct {
		name   string
		action func(ctx context.Context, s *Session) error
	}{
		{name: "search", action: func(ctx context.Context, s *Session) error { return s.Search(ctx, "missingno") }},
		{name: "next past the last known id", action: func(ctx context.Context, s *Session) error { return s.Next(ctx) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, display, notifier, _ := newTestSession(t, 25)
			ctx := context.Background()
			require.NoError(t, s.Start(ctx))

			notifier.On("ShowError", ErrorTitle, NotFoundMessage, mock.MatchedBy(func(err error) bool {
				return assert.ErrorIs(t, err, pokeapi.ErrNotFound)
			})).Once()

			err := tc.action(ctx, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, pokeapi.ErrNotFound)

			assert.Len(t, display.shown, 1, "nothing re-rendered")
			assert.Equal(t, 25, s.Cursor(), "cursor unchanged")
			cur, ok := s.Current()
			require.True(t, ok)
			assert.Equal(t, "pikachu", cur.Name)
			assert.Equal(t, StateIdle, s.State())
			notifier.AssertNumberOfCalls(t, "ShowError", 1)
		})
	}
}

func TestSession_NextRetriesMissingID(t *testing.T) {
	s, display, notifier, srv := newTestSession(t, 3)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	notifier.On("ShowError", ErrorTitle, NotFoundMessage, mock.Anything).Times(3)

	assert.ErrorIs(t, s.Next(ctx), pokeapi.ErrNotFound)
	assert.ErrorIs(t, s.Next(ctx), pokeapi.ErrNotFound)

	assert.Equal(t, 3, s.Cursor())
	assert.Equal(t, 2, srv.Hits("/api/v2/pokemon/4"))
	assert.Equal(t, 0, srv.Hits("/api/v2/pokemon/5"))
	assert.Len(t, display.shown, 1)

	require.NoError(t, s.Search(ctx, "pikachu"))
	assert.ErrorIs(t, s.Previous(ctx), pokeapi.ErrNotFound)
	assert.Equal(t, 25, s.Cursor(), "previous onto a missing id keeps the cursor")
}

func TestSession_EmptySearchWarns(t *testing.T) {
	s, display, notifier, srv := newTestSession(t, 1)
	notifier.On("ShowWarning", InputTitle, EmptySearchText).Once()

	assert.Error(t, s.Search(context.Background(), "   "))
	assert.Empty(t, display.shown)
	assert.Equal(t, 0, srv.Hits("/api/v2/pokemon/"))
}

func TestSession_StateDuringFetch(t *testing.T) {
	s, _, _, srv := newTestSession(t, 1)
	spy := &stateSpy{inner: pokeapi.NewClient(srv.APIBaseURL(), 100, 10), session: s}
	s.fetcher = spy

	require.NoError(t, s.Next(context.Background()))
	assert.Equal(t, []State{StateFetching}, spy.observed)
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, "fetching", StateFetching.String())
}
