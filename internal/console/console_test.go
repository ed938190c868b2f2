package console

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/session"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/typeahead"
)

// fakeMarket is an in-memory marketplace with three pending templates and
// three categories.
type fakeMarket struct {
	mu         sync.Mutex
	lists      []url.Values
	bulkIDs    []string
	patches    []domain.Patch
	reordered  []string
	categories []domain.Category
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		categories: []domain.Category{
			{ID: "c1", Name: "Dashboards", Order: 1},
			{ID: "c2", Name: "Landing pages", Order: 2},
			{ID: "c3", Name: "Portfolios", Order: 3},
		},
	}
}

func (f *fakeMarket) List(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, params)

	var items []domain.Entity
	for i := 1; i <= 3; i++ {
		items = append(items, domain.Entity{
			ID:     fmt.Sprintf("t%d", i),
			Title:  fmt.Sprintf("Template %d", i),
			Status: domain.StatusPending,
		})
	}
	return &domain.Page{Items: items, Pagination: domain.Pagination{Page: 1, Limit: 20, Total: 3}}, nil
}

func (f *fakeMarket) Get(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error) {
	return &domain.EntityDetail{Entity: domain.Entity{
		ID:          id,
		Title:       "Template " + strings.TrimPrefix(id, "t"),
		Status:      domain.StatusPending,
		Description: "Clean",
	}}, nil
}

func (f *fakeMarket) Patch(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, p)
	return nil, nil
}

func (f *fakeMarket) Bulk(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkIDs = append([]string(nil), ids...)
	return domain.BulkOutcome{Succeeded: len(ids)}, nil
}

func (f *fakeMarket) Moderate(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error {
	return nil
}

func (f *fakeMarket) Reorder(ctx context.Context, coll domain.Collection, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reordered = append([]string(nil), ids...)
	return nil
}

func (f *fakeMarket) Categories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Category(nil), f.categories...), nil
}

func (f *fakeMarket) Suggest(ctx context.Context, q string) ([]domain.SearchHit, error) {
	return nil, nil
}

func (f *fakeMarket) Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error) {
	return nil, nil
}

func (f *fakeMarket) lastList() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lists) == 0 {
		return nil
	}
	return f.lists[len(f.lists)-1]
}

type harness struct {
	console *Console
	screen  tcell.SimulationScreen
	market  *fakeMarket
	sess    *session.Session
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	t.Cleanup(scr.Fini)
	scr.SetSize(100, 30)

	market := newFakeMarket()
	sess := session.New(slog.Default(), market, 20)
	search := typeahead.New(slog.Default(), market, typeahead.Options{
		Clock:   clockwork.NewFakeClock(),
		Popular: []string{"dashboard"},
	})
	t.Cleanup(search.Close)

	return &harness{
		console: New(slog.Default(), scr, sess, search),
		screen:  scr,
		market:  market,
		sess:    sess,
	}
}

func (h *harness) press(t *testing.T, keys ...tcell.Key) {
	t.Helper()
	for _, k := range keys {
		require.False(t, h.console.HandleKey(context.Background(), tcell.NewEventKey(k, 0, tcell.ModNone)))
	}
}

func (h *harness) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		require.False(t, h.console.HandleKey(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)))
	}
}

// rows returns the drawn screen as text, one string per row.
func (h *harness) rows() []string {
	h.console.Draw()
	cells, w, hgt := h.screen.GetContents()
	out := make([]string, hgt)
	for y := 0; y < hgt; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(string(c.Runes))
		}
		out[y] = strings.TrimRight(b.String(), " ")
	}
	return out
}

func (h *harness) screenText() string {
	return strings.Join(h.rows(), "\n")
}

// openTemplates starts the templates listing from the overview.
func (h *harness) openTemplates(t *testing.T) {
	t.Helper()
	h.press(t, tcell.KeyEnter)
	require.Equal(t, session.List{Collection: domain.CollectionTemplates}, h.sess.View())
}

// ---------------------------------------------------------------------------
// Overview tests
// ---------------------------------------------------------------------------

func TestOverview_DrawsCollections(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	text := h.screenText()

	assert.Contains(t, text, "Flowbites admin")
	for _, coll := range overviewEntries {
		assert.Contains(t, text, coll.String())
	}
	assert.Contains(t, text, "q quit")
}

func TestOverview_QuitKeys(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	assert.True(t, h.console.HandleKey(ctx, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, h.console.HandleKey(ctx, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))

	h.openTemplates(t)
	assert.False(t, h.console.HandleKey(ctx, tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)), "q only quits from the overview")
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestList_SelectAndBulkApprove(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)

	assert.Contains(t, h.screenText(), "Template 1")

	h.press(t, tcell.KeyDown)
	h.typeText(t, " ")
	assert.Equal(t, []string{"t2"}, h.sess.Selected())
	assert.Contains(t, h.screenText(), "[x]   Template 2")

	h.typeText(t, "a")
	assert.Len(t, h.sess.Selected(), 3)

	h.typeText(t, "A")
	assert.Equal(t, []string{"t1", "t2", "t3"}, h.market.bulkIDs)
	assert.Empty(t, h.sess.Selected())

	rows := h.rows()
	assert.Equal(t, "3 succeeded, 0 failed", rows[len(rows)-1])
}

func TestList_EscapeLeaves(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)
	h.typeText(t, " ")

	h.press(t, tcell.KeyEscape)

	assert.Equal(t, session.Overview{}, h.sess.View())
	assert.Empty(t, h.sess.Selected())
}

func TestList_FeatureToggle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)

	h.typeText(t, "f")

	require.Len(t, h.market.patches, 1)
	require.NotNil(t, h.market.patches[0].Featured)
	assert.True(t, *h.market.patches[0].Featured)
	assert.True(t, h.sess.Listing().Items[0].Featured)
}

// ---------------------------------------------------------------------------
// Detail tests
// ---------------------------------------------------------------------------

func TestDetail_EditAndSave(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)

	h.press(t, tcell.KeyEnter)
	require.Equal(t, session.Detail{Collection: domain.CollectionTemplates, ID: "t1"}, h.sess.View())
	assert.Contains(t, h.screenText(), "status:   pending")

	h.typeText(t, "e")
	h.typeText(t, "er")
	h.press(t, tcell.KeyBackspace2)
	assert.Contains(t, h.screenText(), "description: Cleane_")

	h.press(t, tcell.KeyEnter)
	h.sess.Wait()

	require.Len(t, h.market.patches, 1)
	require.NotNil(t, h.market.patches[0].Description)
	assert.Equal(t, "Cleane", *h.market.patches[0].Description)
	assert.Equal(t, session.Detail{Collection: domain.CollectionTemplates, ID: "t1"}, h.sess.View())
}

func TestDetail_SlashIsTextWhileEditing(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)
	h.press(t, tcell.KeyEnter)
	h.typeText(t, "e/")

	assert.Equal(t, focusMain, h.console.focus)
	v, ok := h.sess.View().(session.Edit)
	require.True(t, ok)
	assert.Equal(t, "Clean/", v.Draft.Description)
}

func TestDetail_CancelEdit(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)
	h.press(t, tcell.KeyEnter)
	h.typeText(t, "ex")

	h.press(t, tcell.KeyEscape, tcell.KeyEscape)

	assert.Equal(t, session.List{Collection: domain.CollectionTemplates}, h.sess.View())
	assert.Empty(t, h.market.patches)
}

// ---------------------------------------------------------------------------
// Search tests
// ---------------------------------------------------------------------------

func TestSearch_SubmitNarrowsListing(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)

	h.typeText(t, "/")
	h.typeText(t, "icons")
	assert.Contains(t, h.screenText(), "Search: icons_")

	h.press(t, tcell.KeyEnter)

	assert.Equal(t, "icons", h.market.lastList().Get("search"))
	assert.Equal(t, []string{"icons"}, h.console.search.Recents())
	assert.Equal(t, focusMain, h.console.focus)
	assert.Contains(t, h.rows()[0], "Flowbites admin / templates?search=icons")
}

func TestSearch_FromOverviewOpensTemplates(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	h.typeText(t, "/")
	h.typeText(t, "saas")
	h.press(t, tcell.KeyEnter)

	assert.Equal(t, session.List{Collection: domain.CollectionTemplates}, h.sess.View())
	assert.Equal(t, "saas", h.market.lastList().Get("search"))
}

func TestSearch_DefaultPanelNavigation(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)

	h.typeText(t, "/")
	assert.Contains(t, h.screenText(), "dashboard  (popular)")

	h.press(t, tcell.KeyDown, tcell.KeyEnter)

	assert.Equal(t, "dashboard", h.market.lastList().Get("search"))
	assert.Contains(t, h.screenText(), "Search: dashboard")
}

func TestSearch_EscapeReturnsToList(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openTemplates(t)
	calls := len(h.market.lists)

	h.typeText(t, "/ab")
	h.press(t, tcell.KeyBackspace2, tcell.KeyEscape)

	assert.Equal(t, focusMain, h.console.focus)
	assert.Equal(t, "a", string(h.console.query))
	assert.Len(t, h.market.lists, calls)
}

// ---------------------------------------------------------------------------
// Categories tests
// ---------------------------------------------------------------------------

func TestCategories_MoveDown(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	for range len(overviewEntries) - 1 {
		h.press(t, tcell.KeyDown)
	}
	h.press(t, tcell.KeyEnter)
	require.Equal(t, session.Categories{}, h.sess.View())
	assert.Contains(t, h.screenText(), "  1. Dashboards")

	h.typeText(t, "J")

	assert.Equal(t, []string{"c2", "c1", "c3"}, h.market.reordered)
	assert.Equal(t, 1, h.console.cursor, "cursor follows the moved category")
	assert.Contains(t, h.screenText(), "  2. Dashboards")
}

// ---------------------------------------------------------------------------
// Run tests
// ---------------------------------------------------------------------------

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.console.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_QuitKey(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	done := make(chan error, 1)
	go func() { done <- h.console.Run(context.Background()) }()
	h.screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after ctrl-c")
	}
}
