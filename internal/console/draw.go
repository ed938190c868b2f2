package console

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/session"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/typeahead"
)

var (
	styleNormal = tcell.StyleDefault
	styleHeader = tcell.StyleDefault.Reverse(true).Bold(true)
	styleCursor = tcell.StyleDefault.Reverse(true)
	styleDim    = tcell.StyleDefault.Dim(true)
)

const bodyTop = 3

// Draw renders the whole screen.
func (c *Console) Draw() {
	c.screen.Clear()
	w, h := c.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	c.drawHeader(w)
	c.drawSearchLine(w)

	switch v := c.sess.View().(type) {
	case session.Overview:
		c.drawOverview(w, h)
	case session.List:
		c.drawList(w, h, v)
	case session.Detail:
		c.drawDetail(w, h)
	case session.Edit:
		c.drawEdit(w, v)
	case session.Categories:
		c.drawCategories(w, h)
	}

	if c.focus == focusSearch {
		c.drawPanel(w, h, c.search.Snapshot())
	}
	c.drawFooter(w, h)
	c.screen.Show()
}

func (c *Console) drawHeader(w int) {
	title := " Flowbites admin"
	switch v := c.sess.View().(type) {
	case session.List:
		title += " / " + v.Collection.String()
		if q := c.sess.Query().Encode(); q != "" {
			title += "?" + q
		}
	case session.Detail:
		title += " / " + v.Collection.String() + " / " + v.ID
	case session.Edit:
		title += " / " + v.Collection.String() + " / " + v.ID + " (editing)"
	case session.Categories:
		title += " / categories"
	}
	c.line(0, w, styleHeader, runewidth.FillRight(title, w))
}

func (c *Console) drawSearchLine(w int) {
	text := "Search: " + string(c.query)
	if c.focus == focusSearch {
		text += "_"
		if st := c.search.Snapshot(); st.Phase == typeahead.PhaseQuerying {
			text += "  searching..."
		}
	}
	c.line(1, w, styleNormal, text)
}

func (c *Console) drawOverview(w, h int) {
	for i, coll := range overviewEntries {
		y := bodyTop + i
		if y >= h-1 {
			return
		}
		style := styleNormal
		if i == c.cursor {
			style = styleCursor
		}
		c.line(y, w, style, "  "+coll.String())
	}
}

func (c *Console) drawList(w, h int, v session.List) {
	st := c.sess.Listing()
	selected := c.sess.Selected()
	p := st.Pagination
	status := fmt.Sprintf("page %d/%d  %d total  %d selected", max(p.Page, 1), max(p.Pages, 1), p.Total, len(selected))
	if st.Loading {
		status += "  loading..."
	}
	c.line(bodyTop-1, w, styleDim, status)

	if len(st.Items) == 0 && st.Loaded {
		c.line(bodyTop, w, styleDim, "  no "+v.Collection.String()+" match these filters")
		return
	}

	titleWidth := max(w-28, 10)
	for i, e := range st.Items {
		y := bodyTop + i
		if y >= h-1 {
			return
		}
		mark := "[ ]"
		if slices.Contains(selected, e.ID) {
			mark = "[x]"
		}
		star := " "
		if e.Featured {
			star = "*"
		}
		row := fmt.Sprintf("%s %s %s %s",
			mark,
			star,
			runewidth.FillRight(runewidth.Truncate(e.Title, titleWidth, "…"), titleWidth),
			e.Status,
		)
		style := styleNormal
		if i == c.cursor {
			style = styleCursor
		}
		c.line(y, w, style, row)
	}
}

func (c *Console) drawDetail(w, h int) {
	d := c.sess.Detail().Detail
	if d == nil {
		return
	}
	price := "-"
	if d.Price != nil {
		price = strconv.FormatFloat(*d.Price, 'f', 2, 64)
	}
	lines := []string{
		d.Title,
		"status:   " + d.Status.String(),
		"creator:  " + d.Creator,
		"category: " + d.Category,
		"price:    " + price,
		"featured: " + strconv.FormatBool(d.Featured),
		"",
		d.Description,
	}
	if len(d.History) > 0 {
		lines = append(lines, "", "history:")
		for _, hc := range d.History {
			lines = append(lines, fmt.Sprintf("  %s -> %s by %s %s", hc.From, hc.To, hc.By, hc.Reason))
		}
	}
	for i, l := range lines {
		if bodyTop+i >= h-1 {
			return
		}
		c.line(bodyTop+i, w, styleNormal, l)
	}
}

func (c *Console) drawEdit(w int, v session.Edit) {
	c.line(bodyTop, w, styleNormal, "description: "+v.Draft.Description+"_")
	c.line(bodyTop+1, w, styleNormal, "category:    "+v.Draft.Category)
	c.line(bodyTop+2, w, styleNormal, "featured:    "+strconv.FormatBool(v.Draft.Featured))
}

func (c *Console) drawCategories(w, h int) {
	st := c.sess.CategoryOrder()
	for i, cat := range st.Items {
		y := bodyTop + i
		if y >= h-1 {
			return
		}
		style := styleNormal
		if i == c.cursor {
			style = styleCursor
		}
		c.line(y, w, style, fmt.Sprintf("%3d. %s", i+1, cat.Name))
	}
}

// drawPanel overlays the typeahead items under the search line.
func (c *Console) drawPanel(w, h int, st typeahead.State) {
	if !st.Open {
		return
	}
	rows := st.Items
	if st.Err != nil && len(rows) == 0 {
		c.line(bodyTop-1, w, styleDim, "  search unavailable")
		return
	}
	for i, it := range rows {
		y := bodyTop - 1 + i
		if y >= h-1 {
			return
		}
		style := styleNormal
		if i == st.Highlight {
			style = styleCursor
		}
		text := fmt.Sprintf("  %s  (%s)", it.Hit.Title, it.Source)
		c.line(y, w, style, runewidth.FillRight(runewidth.Truncate(text, w, "…"), w))
	}
}

func (c *Console) drawFooter(w, h int) {
	text := c.sess.Message()
	if text == "" {
		text = footerHint(c.sess.View(), c.focus)
	}
	c.line(h-1, w, styleDim, text)
}

func footerHint(v session.View, f focus) string {
	if f == focusSearch {
		return "type to search  up/down move  enter pick  esc close"
	}
	switch v.(type) {
	case session.List:
		return "space select  a all  A approve  f feature  n/p page  enter open  esc back  / search"
	case session.Detail:
		return "e edit  A approve  esc back"
	case session.Edit:
		return "type to edit description  enter save  esc cancel"
	case session.Categories:
		return "K/J move up/down  esc back"
	default:
		return "enter open  / search  q quit"
	}
}

// line draws text at row y, clipped to width w.
func (c *Console) line(y, w int, style tcell.Style, text string) {
	x := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw <= 0 {
			continue
		}
		if x+rw > w {
			return
		}
		c.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
}
