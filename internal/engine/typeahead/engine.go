// Package typeahead implements the debounced search-as-you-type panel:
// suggestions and full search race per pause in typing, the last keystroke
// wins, and the merged results are navigable from the keyboard.
package typeahead

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

type searcher interface {
	Suggest(ctx context.Context, q string) ([]domain.SearchHit, error)
	Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error)
}

// Options configures an Engine. Zero fields take the defaults.
type Options struct {
	Debounce    time.Duration
	MinChars    int
	RecentLimit int
	SearchLimit int
	Popular     []string
	CacheSize   int
	CacheTTL    time.Duration
	Clock       clockwork.Clock
}

const (
	DefaultDebounce    = 200 * time.Millisecond
	DefaultMinChars    = 2
	DefaultRecentLimit = 5
)

func (o Options) withDefaults() Options {
	if o.Debounce < 0 {
		o.Debounce = 0
	}
	if o.MinChars <= 0 {
		o.MinChars = DefaultMinChars
	}
	if o.RecentLimit <= 0 {
		o.RecentLimit = DefaultRecentLimit
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// Engine is safe for concurrent use.
type Engine struct {
	api   searcher
	log   *slog.Logger
	opts  Options
	cache *expirable.LRU[string, []Item]

	ctx  context.Context
	stop context.CancelFunc

	mu        sync.Mutex
	input     string
	phase     Phase
	open      bool
	items     []Item
	highlight int
	err       error
	recents   []string
	version   uint64
	timer     clockwork.Timer
	cancel    context.CancelFunc
	onChange  func(State)
	closed    bool
}

// New creates an idle Engine showing the default panel.
func New(log *slog.Logger, api searcher, opts Options) *Engine {
	opts = opts.withDefaults()
	ctx, stop := context.WithCancel(context.Background())

	e := &Engine{
		api:       api,
		log:       log.With("engine", "typeahead"),
		opts:      opts,
		ctx:       ctx,
		stop:      stop,
		highlight: -1,
	}
	if opts.CacheSize > 0 {
		e.cache = expirable.NewLRU[string, []Item](opts.CacheSize, nil, opts.CacheTTL)
	}
	e.items = e.defaultPanelLocked()
	return e
}

// OnChange registers a callback run after every state change.
func (e *Engine) OnChange(fn func(State)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Input handles a change of the input text. Below the minimum length the
// default panel is shown and nothing is requested; otherwise the debounce
// timer restarts and any in-flight pair is abandoned.
func (e *Engine) Input(text string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}

	e.input = text
	e.open = true
	e.version++
	version := e.version
	e.abortLocked()

	q := strings.TrimSpace(text)
	switch {
	case utf8.RuneCountInString(q) < e.opts.MinChars:
		e.phase = PhaseIdle
		e.items = e.defaultPanelLocked()
		e.highlight = -1
		e.err = nil

	case e.cachedLocked(q):
		e.log.Debug("typeahead cache hit", slog.String("query", q))

	default:
		e.phase = PhaseQuerying
		e.highlight = -1
		e.timer = e.opts.Clock.AfterFunc(e.opts.Debounce, func() {
			go e.fire(version, q)
		})
	}
	e.mu.Unlock()

	e.emit()
}

// fire runs the suggestion and search lookups for the query issued by
// version, committing the results only if no keystroke happened since.
func (e *Engine) fire(version uint64, q string) {
	e.mu.Lock()
	if version != e.version || e.closed {
		e.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(e.ctx)
	e.cancel = cancel
	e.mu.Unlock()
	defer cancel()

	var (
		suggestions []domain.SearchHit
		hits        []domain.SearchHit
		suggestOK   bool
		searchOK    bool
	)

	var g errgroup.Group
	g.Go(func() error {
		res, err := e.api.Suggest(ctx, q)
		if err != nil {
			return fmt.Errorf("suggest: %w", err)
		}
		suggestions, suggestOK = res, true
		return nil
	})
	g.Go(func() error {
		res, err := e.api.Search(ctx, q, e.opts.SearchLimit)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		hits, searchOK = res, true
		return nil
	})
	err := g.Wait()

	e.mu.Lock()
	if version != e.version || e.closed {
		e.mu.Unlock()
		e.log.Debug("stale typeahead response dropped", slog.String("query", q))
		return
	}

	e.cancel = nil
	e.phase = PhaseResults
	e.highlight = -1
	if !suggestOK && !searchOK {
		e.items = nil
		e.err = err
		e.mu.Unlock()
		e.log.Warn("typeahead lookup failed",
			slog.String("query", q),
			slog.String("error", err.Error()),
		)
		e.emit()
		return
	}

	e.items = merge(suggestions, hits)
	e.err = nil
	if err == nil && e.cache != nil {
		e.cache.Add(domain.NormalizeQuery(q), slices.Clone(e.items))
	}
	e.mu.Unlock()

	if err != nil {
		e.log.Warn("typeahead lookup partially failed",
			slog.String("query", q),
			slog.String("error", err.Error()),
		)
	}
	e.emit()
}

// Key handles a navigation key. For Enter it returns the selection to
// navigate to; ok is false when nothing was selected.
func (e *Engine) Key(k Key) (sel Selection, ok bool) {
	e.mu.Lock()
	switch k {
	case KeyDown, KeyUp:
		if !e.open {
			e.open = true
			if e.phase == PhaseIdle {
				e.items = e.defaultPanelLocked()
			}
		}
		e.highlight = step(e.highlight, len(e.items), k == KeyDown)

	case KeyEnter:
		if e.open && e.highlight >= 0 && e.highlight < len(e.items) {
			sel, ok = e.selectLocked(e.highlight), true
			break
		}
		q := strings.TrimSpace(e.input)
		if q == "" {
			break
		}
		e.recordLocked(q)
		e.closeLocked()
		sel, ok = Selection{Query: q}, true

	case KeyEscape:
		e.closeLocked()
	}
	e.mu.Unlock()

	e.emit()
	return sel, ok
}

// Select picks the item at index i, as a click would.
func (e *Engine) Select(i int) (Selection, bool) {
	e.mu.Lock()
	if !e.open || i < 0 || i >= len(e.items) {
		e.mu.Unlock()
		return Selection{}, false
	}
	sel := e.selectLocked(i)
	e.mu.Unlock()

	e.emit()
	return sel, true
}

// ClickOutside closes the panel and keeps the input.
func (e *Engine) ClickOutside() {
	e.mu.Lock()
	e.closeLocked()
	e.mu.Unlock()
	e.emit()
}

// Focus reopens the panel.
func (e *Engine) Focus() {
	e.mu.Lock()
	e.open = true
	if e.phase == PhaseIdle {
		e.items = e.defaultPanelLocked()
	}
	e.mu.Unlock()
	e.emit()
}

// Recents returns the recent searches, most recent first.
func (e *Engine) Recents() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.recents)
}

// SetRecents seeds the recent searches, e.g. from a previous session.
func (e *Engine) SetRecents(list []string) {
	e.mu.Lock()
	e.recents = nil
	for i := len(list) - 1; i >= 0; i-- {
		e.recordLocked(list[i])
	}
	if e.phase == PhaseIdle {
		e.items = e.defaultPanelLocked()
	}
	e.mu.Unlock()
}

// Close abandons pending work. The engine ignores input afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.abortLocked()
	e.mu.Unlock()
	e.stop()
}

func (e *Engine) selectLocked(i int) Selection {
	hit := e.items[i].Hit
	query := hit.Title
	if query == "" {
		query = strings.TrimSpace(e.input)
	}
	e.recordLocked(query)
	e.closeLocked()
	return Selection{Query: query, Hit: &hit}
}

// recordLocked moves q to the front of the recent list, dropping a
// case-insensitive duplicate and the oldest entry beyond the limit.
func (e *Engine) recordLocked(q string) {
	q = strings.TrimSpace(q)
	key := domain.NormalizeQuery(q)
	if key == "" {
		return
	}
	e.recents = slices.DeleteFunc(e.recents, func(r string) bool {
		return domain.NormalizeQuery(r) == key
	})
	e.recents = slices.Insert(e.recents, 0, q)
	if len(e.recents) > e.opts.RecentLimit {
		e.recents = e.recents[:e.opts.RecentLimit]
	}
	if e.phase == PhaseIdle {
		e.items = e.defaultPanelLocked()
	}
}

func (e *Engine) defaultPanelLocked() []Item {
	items := make([]Item, 0, len(e.recents)+len(e.opts.Popular))
	seen := make(map[string]struct{}, cap(items))
	add := func(src Source, text string) {
		key := domain.NormalizeQuery(text)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		items = append(items, Item{
			Source: src,
			Hit:    domain.SearchHit{ID: text, Kind: domain.HitKindQuery, Title: text},
		})
	}
	for _, r := range e.recents {
		add(SourceRecent, r)
	}
	for _, p := range e.opts.Popular {
		add(SourcePopular, p)
	}
	return items
}

func (e *Engine) cachedLocked(q string) bool {
	if e.cache == nil {
		return false
	}
	items, ok := e.cache.Get(domain.NormalizeQuery(q))
	if !ok {
		return false
	}
	e.phase = PhaseResults
	e.items = slices.Clone(items)
	e.highlight = -1
	e.err = nil
	return true
}

func (e *Engine) abortLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *Engine) closeLocked() {
	e.open = false
	e.highlight = -1
}

func (e *Engine) snapshotLocked() State {
	return State{
		Input:     e.input,
		Phase:     e.phase,
		Open:      e.open,
		Items:     slices.Clone(e.items),
		Highlight: e.highlight,
		Err:       e.err,
	}
}

func (e *Engine) emit() {
	e.mu.Lock()
	fn := e.onChange
	s := e.snapshotLocked()
	e.mu.Unlock()

	if fn != nil {
		fn(s)
	}
}

// step moves a highlight through n items, wrapping at both ends. -1 means
// nothing is highlighted.
func step(cur, n int, down bool) int {
	if n == 0 {
		return -1
	}
	if down {
		return (cur + 1) % n
	}
	if cur <= 0 {
		return n - 1
	}
	return cur - 1
}

// merge concatenates suggestions and the search hits not already suggested.
func merge(suggestions, hits []domain.SearchHit) []Item {
	items := make([]Item, 0, len(suggestions)+len(hits))
	seen := make(map[string]struct{}, cap(items))
	add := func(src Source, h domain.SearchHit) {
		key := string(h.Kind) + ":" + h.ID
		if h.ID == "" {
			key = string(h.Kind) + ":" + domain.NormalizeQuery(h.Title)
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		items = append(items, Item{Source: src, Hit: h})
	}
	for _, h := range suggestions {
		add(SourceSuggestion, h)
	}
	for _, h := range hits {
		add(SourceSearch, h)
	}
	return items
}
