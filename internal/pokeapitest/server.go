// Package pokeapitest serves a small in-memory PokeAPI and sprite host for
// tests. Routes mirror the real services: /api/v2/pokemon/{identifier} and
// /sprites/pokemon/[shiny/]{id}.png.
package pokeapitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Pokemon is a fixture entry. It is serialised in the PokeAPI response shape.
type Pokemon struct {
	ID     int
	Name   string
	Height int
	Weight int
	Types  []string
	Stats  []Stat
}

type Stat struct {
	Name string
	Base int
}

type Server struct {
	*httptest.Server

	mu      sync.Mutex
	pokemon map[string][]byte // keyed by name and by id
	sprites map[string][]byte // keyed by request path
	hits    map[string]int
}

// NewServer starts a fake host and registers its shutdown with t.
func NewServer(t testing.TB) *Server {
	s := &Server{
		pokemon: make(map[string][]byte),
		sprites: make(map[string][]byte),
		hits:    make(map[string]int),
	}
	s.Server = httptest.NewServer(s.Router())
	t.Cleanup(s.Close)
	return s
}

// Router returns the chi router backing the fake host.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countHits)

	r.Route("/api/v2", func(r chi.Router) {
		r.Get("/pokemon/{identifier}", s.getPokemon)
	})

	r.Route("/sprites/pokemon", func(r chi.Router) {
		r.Get("/{file}", s.getSprite)
		r.Get("/shiny/{file}", s.getSprite)
	})

	return r
}

func (s *Server) APIBaseURL() string    { return s.URL + "/api/v2" }
func (s *Server) SpriteBaseURL() string { return s.URL + "/sprites" }

// AddPokemon registers a fixture under both its name and its id.
func (s *Server) AddPokemon(p Pokemon) {
	s.AddRawPokemon(p.JSON(), p.Name, strconv.Itoa(p.ID))
}

// AddRawPokemon registers an arbitrary body under the given identifiers.
func (s *Server) AddRawPokemon(body []byte, identifiers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range identifiers {
		s.pokemon[strings.ToLower(id)] = body
	}
}

// AddSprite registers image bytes for the normal or shiny sprite of id.
func (s *Server) AddSprite(id int, shiny bool, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sprites[SpritePath(id, shiny)] = body
}

// Hits reports how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// SpritePath is the request path of a sprite on this host.
func SpritePath(id int, shiny bool) string {
	if shiny {
		return fmt.Sprintf("/sprites/pokemon/shiny/%d.png", id)
	}
	return fmt.Sprintf("/sprites/pokemon/%d.png", id)
}

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	identifier := strings.ToLower(chi.URLParam(r, "identifier"))

	s.mu.Lock()
	body, ok := s.pokemon[identifier]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

func (s *Server) getSprite(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body, ok := s.sprites[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "404: Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(body)
}

// --- Fixtures ---

// JSON renders the fixture in the PokeAPI payload shape.
func (p Pokemon) JSON() []byte {
	type resource struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	type typeSlot struct {
		Slot int      `json:"slot"`
		Type resource `json:"type"`
	}
	type stat struct {
		BaseStat int      `json:"base_stat"`
		Effort   int      `json:"effort"`
		Stat     resource `json:"stat"`
	}

	payload := struct {
		ID     int        `json:"id"`
		Name   string     `json:"name"`
		Height int        `json:"height"`
		Weight int        `json:"weight"`
		Types  []typeSlot `json:"types"`
		Stats  []stat     `json:"stats"`
	}{
		ID:     p.ID,
		Name:   p.Name,
		Height: p.Height,
		Weight: p.Weight,
		Types:  []typeSlot{},
		Stats:  []stat{},
	}
	for i, t := range p.Types {
		payload.Types = append(payload.Types, typeSlot{
			Slot: i + 1,
			Type: resource{Name: t, URL: "https://pokeapi.co/api/v2/type/" + t + "/"},
		})
	}
	for _, st := range p.Stats {
		payload.Stats = append(payload.Stats, stat{
			BaseStat: st.Base,
			Stat:     resource{Name: st.Name, URL: "https://pokeapi.co/api/v2/stat/" + st.Name + "/"},
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return body
}

func canonicalStats(hp, atk, def, spa, spd, spe int) []Stat {
	return []Stat{
		{"hp", hp},
		{"attack", atk},
		{"defense", def},
		{"special-attack", spa},
		{"special-defense", spd},
		{"speed", spe},
	}
}

func Bulbasaur() Pokemon {
	return Pokemon{ID: 1, Name: "bulbasaur", Height: 7, Weight: 69,
		Types: []string{"grass", "poison"}, Stats: canonicalStats(45, 49, 49, 65, 65, 45)}
}

func Ivysaur() Pokemon {
	return Pokemon{ID: 2, Name: "ivysaur", Height: 10, Weight: 130,
		Types: []string{"grass", "poison"}, Stats: canonicalStats(60, 62, 63, 80, 80, 60)}
}

func Venusaur() Pokemon {
	return Pokemon{ID: 3, Name: "venusaur", Height: 20, Weight: 1000,
		Types: []string{"grass", "poison"}, Stats: canonicalStats(80, 82, 83, 100, 100, 80)}
}

func Pikachu() Pokemon {
	return Pokemon{ID: 25, Name: "pikachu", Height: 4, Weight: 60,
		Types: []string{"electric"}, Stats: canonicalStats(35, 55, 40, 50, 50, 90)}
}

func MrMime() Pokemon {
	return Pokemon{ID: 122, Name: "mr-mime", Height: 13, Weight: 545,
		Types: []string{"psychic", "fairy"}, Stats: canonicalStats(40, 45, 65, 100, 120, 90)}
}

// PNG encodes a solid w×h image.
func PNG(w, h int, c color.Color) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
