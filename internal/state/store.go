// Package state holds the single application snapshot and renders it on
// every change.
package state

import (
	"log/slog"
	"sync"

	"StockWatch/internal/model"
)

// Renderer receives the whole snapshot after every applied patch.
type Renderer interface {
	Render(s model.ApplicationState)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(s model.ApplicationState)

func (f RenderFunc) Render(s model.ApplicationState) { f(s) }

// Target names a logical request stream for generation tracking.
type Target string

const (
	// TargetView covers summary and news fetches for the viewed symbol.
	TargetView Target = "view"
	// TargetChart covers chart builds for the viewed symbol.
	TargetChart Target = "chart"
)

// Token identifies one issued request. Only the newest token per target may apply.
type Token struct {
	Target Target
	Gen    uint64
}

// Store owns the application snapshot. All writes go through Apply or ApplyAt.
// Renderers may read the store but must not write to it.
type Store struct {
	renderMu  sync.Mutex // held for a whole transition plus its render pass
	mu        sync.Mutex // guards cur, gens, renderers
	cur       model.ApplicationState
	gens      map[Target]uint64
	renderers []Renderer

	subMu   sync.Mutex
	subs    map[int]chan model.ApplicationState
	nextSub int
}

// New creates an empty store rendering to renderers.
func New(renderers ...Renderer) *Store {
	return &Store{
		cur:       model.ApplicationState{WatchList: []model.WatchlistEntry{}, NewsData: []model.NewsItem{}},
		gens:      make(map[Target]uint64),
		renderers: renderers,
		subs:      make(map[int]chan model.ApplicationState),
	}
}

// AddRenderer registers r for subsequent render passes.
func (s *Store) AddRenderer(r Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderers = append(s.renderers, r)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() model.ApplicationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Clone()
}

// Apply merges p into the snapshot and runs a full render pass.
func (s *Store) Apply(p Patch) model.ApplicationState {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	next := p.apply(s.cur)
	s.cur = next
	renderers := append([]Renderer(nil), s.renderers...)
	s.mu.Unlock()

	s.render(renderers, next)
	return next.Clone()
}

// Update builds a patch from the current state and applies it as one
// transition. fn receives a copy and must not call back into the store.
func (s *Store) Update(fn func(cur model.ApplicationState) Patch) model.ApplicationState {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	p := fn(s.cur.Clone())
	if p.Empty() {
		cur := s.cur.Clone()
		s.mu.Unlock()
		return cur
	}
	next := p.apply(s.cur)
	s.cur = next
	renderers := append([]Renderer(nil), s.renderers...)
	s.mu.Unlock()

	s.render(renderers, next)
	return next.Clone()
}

// Render runs a render pass over the current snapshot without changing it.
func (s *Store) Render() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	cur := s.cur
	renderers := append([]Renderer(nil), s.renderers...)
	s.mu.Unlock()

	s.render(renderers, cur)
}

// render runs with renderMu held so passes are delivered in patch order.
func (s *Store) render(renderers []Renderer, snap model.ApplicationState) {
	for _, r := range renderers {
		r.Render(snap.Clone())
	}
	s.broadcast(snap)
}

// Begin issues a new token for target, superseding all earlier ones.
func (s *Store) Begin(target Target) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[target]++
	return Token{Target: target, Gen: s.gens[target]}
}

// Current reports whether tok is still the newest token for its target.
func (s *Store) Current(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[tok.Target] == tok.Gen
}

// ApplyAt applies p only if tok is still current. It reports whether the
// patch was applied.
func (s *Store) ApplyAt(tok Token, p Patch) (model.ApplicationState, bool) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	if s.gens[tok.Target] != tok.Gen {
		latest := s.gens[tok.Target]
		s.mu.Unlock()
		slog.Debug("discarding stale response", "target", tok.Target, "gen", tok.Gen, "latest", latest)
		return model.ApplicationState{}, false
	}
	next := p.apply(s.cur)
	s.cur = next
	renderers := append([]Renderer(nil), s.renderers...)
	s.mu.Unlock()

	s.render(renderers, next)
	return next.Clone(), true
}

// Subscribe returns a channel receiving every rendered snapshot. Delivery
// never blocks; a full channel misses that snapshot.
func (s *Store) Subscribe(buf int) (int, <-chan model.ApplicationState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan model.ApplicationState, buf)
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe closes and removes the subscription.
func (s *Store) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}

func (s *Store) broadcast(snap model.ApplicationState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap.Clone():
		default:
		}
	}
}
