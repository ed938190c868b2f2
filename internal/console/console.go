// Package console is a terminal front end for one moderation session. It
// maps keys to session and typeahead operations and redraws after each.
package console

import (
	"context"
	"log/slog"
	"net/url"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/reorder"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/session"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/typeahead"
)

// Entries of the overview screen, in display order.
var overviewEntries = []domain.Collection{
	domain.CollectionTemplates,
	domain.CollectionCreators,
	domain.CollectionRefunds,
	domain.CollectionReviews,
	domain.CollectionReports,
	domain.CollectionTickets,
	domain.CollectionWithdrawals,
	domain.CollectionShots,
	domain.CollectionUsers,
	domain.CollectionCoupons,
	domain.CollectionCategories,
}

type focus int

const (
	focusMain focus = iota
	focusSearch
)

// Console owns the screen. HandleKey and Draw must be called from one goroutine.
type Console struct {
	screen tcell.Screen
	sess   *session.Session
	search *typeahead.Engine
	log    *slog.Logger

	focus  focus
	cursor int
	query  []rune
}

// New creates a console drawing on screen. The screen must be initialised.
func New(log *slog.Logger, screen tcell.Screen, sess *session.Session, search *typeahead.Engine) *Console {
	return &Console{
		screen: screen,
		sess:   sess,
		search: search,
		log:    log.With("engine", "console"),
	}
}

// Run processes events until the user quits or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.search.OnChange(func(typeahead.State) {
		_ = c.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer c.search.OnChange(nil)

	stop := context.AfterFunc(ctx, func() {
		_ = c.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	c.Draw()
	for {
		switch ev := c.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			c.screen.Sync()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventKey:
			if c.HandleKey(ctx, ev) {
				return nil
			}
		}
		c.Draw()
	}
}

// HandleKey applies one key press. It reports whether the console should exit.
func (c *Console) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if c.focus == focusSearch {
		c.searchKey(ctx, ev)
		return false
	}
	view := c.sess.View()
	if _, editing := view.(session.Edit); !editing && ev.Key() == tcell.KeyRune && ev.Rune() == '/' {
		c.focus = focusSearch
		c.search.Focus()
		return false
	}

	switch v := view.(type) {
	case session.Overview:
		return c.overviewKey(ctx, ev)
	case session.List:
		c.listKey(ctx, ev)
	case session.Detail:
		c.detailKey(ctx, ev)
	case session.Edit:
		c.editKey(ctx, ev, v)
	case session.Categories:
		c.categoriesKey(ctx, ev)
	}
	return false
}

func (c *Console) overviewKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		c.moveCursor(-1, len(overviewEntries))
	case tcell.KeyDown:
		c.moveCursor(1, len(overviewEntries))
	case tcell.KeyEnter:
		coll := overviewEntries[c.cursor]
		c.cursor = 0
		if coll == domain.CollectionCategories {
			c.check(c.sess.ShowCategories(ctx))
			return false
		}
		c.check(c.sess.Start(ctx, coll, nil))
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func (c *Console) listKey(ctx context.Context, ev *tcell.EventKey) {
	items := c.sess.Listing().Items
	c.cursor = min(c.cursor, max(len(items)-1, 0))

	switch ev.Key() {
	case tcell.KeyUp:
		c.moveCursor(-1, len(items))
		return
	case tcell.KeyDown:
		c.moveCursor(1, len(items))
		return
	case tcell.KeyEscape:
		c.leave()
		return
	case tcell.KeyEnter:
		if len(items) > 0 {
			c.check(c.sess.Open(ctx, items[c.cursor].ID))
		}
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case ' ':
		if len(items) > 0 {
			c.sess.Toggle(items[c.cursor].ID)
		}
	case 'a':
		c.sess.ToggleAll()
	case 'n':
		c.turnPage(ctx, 1)
	case 'p':
		c.turnPage(ctx, -1)
	case 'r':
		c.check(c.sess.Reload(ctx))
	case 'f':
		if len(items) > 0 {
			c.check(c.sess.ToggleFeatured(ctx, items[c.cursor].ID))
		}
	case 'A':
		c.runBulk(ctx, domain.ActionApprove)
	case 'P':
		c.runBulk(ctx, domain.ActionProcess)
	case 'R':
		c.runBulk(ctx, domain.ActionResolve)
	}
}

// runBulk only sends actions that need no typed reason.
func (c *Console) runBulk(ctx context.Context, action domain.Action) {
	if confirm := c.sess.ConfirmBulk(action); confirm.RequireReason {
		return
	}
	_, err := c.sess.RunBulk(ctx, action, "")
	c.check(err)
}

func (c *Console) turnPage(ctx context.Context, delta int) {
	st := c.sess.Listing()
	next := st.Pagination.Page + delta
	if next < 1 || (st.Pagination.Pages > 0 && next > st.Pagination.Pages) {
		return
	}
	c.cursor = 0
	c.check(c.sess.SetPage(ctx, next))
}

func (c *Console) detailKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.check(c.sess.Back())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'e':
			c.check(c.sess.Edit())
		case 'A':
			c.check(c.sess.Moderate(ctx, domain.ActionApprove, ""))
		}
	}
}

func (c *Console) editKey(ctx context.Context, ev *tcell.EventKey, v session.Edit) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.check(c.sess.Cancel())
	case tcell.KeyEnter:
		c.check(c.sess.Save(ctx))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		desc := []rune(v.Draft.Description)
		if len(desc) == 0 {
			return
		}
		c.check(c.sess.UpdateDraft(func(f *domain.EditableFields) {
			f.Description = string(desc[:len(desc)-1])
		}))
	case tcell.KeyRune:
		r := ev.Rune()
		c.check(c.sess.UpdateDraft(func(f *domain.EditableFields) {
			f.Description += string(r)
		}))
	}
}

func (c *Console) categoriesKey(ctx context.Context, ev *tcell.EventKey) {
	items := c.sess.CategoryOrder().Items
	switch ev.Key() {
	case tcell.KeyUp:
		c.moveCursor(-1, len(items))
	case tcell.KeyDown:
		c.moveCursor(1, len(items))
	case tcell.KeyEscape:
		c.leave()
	case tcell.KeyRune:
		if len(items) == 0 {
			return
		}
		id := items[min(c.cursor, len(items)-1)].ID
		switch ev.Rune() {
		case 'K':
			c.check(c.sess.MoveCategory(ctx, id, reorder.Up))
		case 'J':
			c.check(c.sess.MoveCategory(ctx, id, reorder.Down))
		default:
			return
		}
		c.followCategory(id)
	}
}

// followCategory keeps the cursor on the moved category.
func (c *Console) followCategory(id string) {
	items := c.sess.CategoryOrder().Items
	if i := slices.IndexFunc(items, func(cat domain.Category) bool { return cat.ID == id }); i >= 0 {
		c.cursor = i
	}
}

func (c *Console) searchKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		c.search.Key(typeahead.KeyEscape)
		c.focus = focusMain
	case tcell.KeyUp:
		c.search.Key(typeahead.KeyUp)
	case tcell.KeyDown:
		c.search.Key(typeahead.KeyDown)
	case tcell.KeyEnter:
		sel, ok := c.search.Key(typeahead.KeyEnter)
		if !ok {
			return
		}
		c.query = []rune(sel.Query)
		c.focus = focusMain
		c.applySearch(ctx, sel)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(c.query) == 0 {
			return
		}
		c.query = c.query[:len(c.query)-1]
		c.search.Input(string(c.query))
	case tcell.KeyRune:
		c.query = append(c.query, ev.Rune())
		c.search.Input(string(c.query))
	}
}

// applySearch narrows the open listing when it can be searched, otherwise
// opens the collection the hit belongs to.
func (c *Console) applySearch(ctx context.Context, sel typeahead.Selection) {
	c.cursor = 0

	if sel.Hit != nil {
		switch sel.Hit.Kind {
		case domain.HitKindCreator:
			c.check(c.sess.Start(ctx, domain.CollectionCreators, url.Values{domain.FilterSearch: {sel.Query}}))
			return
		case domain.HitKindCategory:
			c.check(c.sess.Start(ctx, domain.CollectionTemplates, url.Values{domain.FilterCategory: {sel.Hit.ID}}))
			return
		}
	}

	if _, ok := c.sess.View().(session.List); ok {
		c.check(c.sess.SetFilter(ctx, domain.FilterSearch, sel.Query))
		return
	}
	c.check(c.sess.Start(ctx, domain.CollectionTemplates, url.Values{domain.FilterSearch: {sel.Query}}))
}

func (c *Console) leave() {
	c.cursor = 0
	c.query = nil
	c.sess.Leave()
}

func (c *Console) moveCursor(delta, n int) {
	if n == 0 {
		c.cursor = 0
		return
	}
	c.cursor = min(max(c.cursor+delta, 0), n-1)
}

// check logs a failed operation. The session already turned it into a notice.
func (c *Console) check(err error) {
	if err != nil {
		c.log.Debug("operation failed", slog.String("error", err.Error()))
	}
}
