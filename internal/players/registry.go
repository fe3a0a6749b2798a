// Package players holds the player registry and its persisted document form.
package players

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/verte-zerg/yachtscore/internal/score"
)

var (
	// ErrUnknownPlayer is returned when a name is not registered.
	ErrUnknownPlayer = errors.New("no such player")
	// ErrEmptyName is returned when adding a blank player name.
	ErrEmptyName = errors.New("player name is empty")
)

// Entry is a snapshot of one player's scoreboard.
type Entry struct {
	Name  string
	Board score.Scoreboard
}

// Registry maps player names to scoreboards. It is safe for concurrent use;
// mutations are serialized and readers get copies.
type Registry struct {
	mu     sync.RWMutex
	boards map[string]*score.Scoreboard
	order  []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{boards: make(map[string]*score.Scoreboard, 10)}
}

// AddPlayer registers name with a fresh scoreboard. Re-adding an existing
// player resets their scoreboard and keeps their position.
func (r *Registry) AddPlayer(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addLocked(name)
	return nil
}

func (r *Registry) addLocked(name string) *score.Scoreboard {
	sb := score.NewScoreboard()
	if _, ok := r.boards[name]; !ok {
		r.order = append(r.order, name)
	}
	r.boards[name] = &sb
	return &sb
}

// RemovePlayer drops name and reports whether it was registered.
func (r *Registry) RemovePlayer(name string) bool {
	name = strings.TrimSpace(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.boards[name]; !ok {
		return false
	}
	delete(r.boards, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// ClearAllScores resets every scoreboard, keeping the players.
func (r *Registry) ClearAllScores() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sb := range r.boards {
		*sb = score.NewScoreboard()
	}
}

// ApplyScore writes in to the named player's scoreboard and recomputes its
// totals. Unknown players yield ErrUnknownPlayer and nothing changes.
func (r *Registry) ApplyScore(name string, in score.Input) error {
	name = strings.TrimSpace(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	sb, ok := r.boards[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	sb.Apply(in)
	return nil
}

// IsEmpty reports whether no players are registered.
func (r *Registry) IsEmpty() bool {
	return r.Len() == 0
}

// Len returns the number of players.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.boards)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Get returns a copy of the named player's scoreboard.
func (r *Registry) Get(name string) (score.Scoreboard, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sb, ok := r.boards[strings.TrimSpace(name)]
	if !ok {
		return score.Scoreboard{}, false
	}
	return *sb, true
}

// Names returns player names in the order they were added.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Entries returns a snapshot of every player in the order they were added.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Entry{Name: name, Board: *r.boards[name]})
	}
	return out
}

// Replace swaps in the contents of other wholesale.
func (r *Registry) Replace(other *Registry) {
	if r == other {
		return
	}
	entries := other.Entries()
	boards := make(map[string]*score.Scoreboard, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		sb := e.Board
		boards[e.Name] = &sb
		order = append(order, e.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = boards
	r.order = order
}
