// Command modctl runs moderation operations from scripts.
//
// Usage:
//
//	modctl list -collection=templates -status=pending -page=2
//	modctl bulk -collection=templates -status=pending -action=approve [-ids=t1,t2] [-reason=...]
//	modctl categories
//	modctl move-category -id=c3 -to=0
//
// bulk acts on the listed page: with -ids only those rows are selected,
// otherwise the whole page is.
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/app"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/listing"
	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/engine/session"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	a, err := app.New(os.Stderr)
	if err != nil {
		log.Fatalf("modctl: %v", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(a.Context(context.Background()), 2*time.Minute)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "list":
		err = runList(ctx, a.Session, os.Stdout, args)
	case "bulk":
		err = runBulk(ctx, a.Session, os.Stdout, args)
	case "categories":
		err = runCategories(ctx, a.Session, os.Stdout)
	case "move-category":
		err = runMoveCategory(ctx, a.Session, os.Stdout, args)
	default:
		usage()
	}

	switch {
	case errors.Is(err, errUsage):
		usage()
	case err != nil:
		a.Logger.Error("command failed", slog.String("command", cmd), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: modctl list|bulk|categories|move-category [flags]")
	os.Exit(2)
}

// listFlags are shared by list and bulk.
type listFlags struct {
	collection string
	page       int
	filters    map[string]*string
}

func newListFlags(fs *flag.FlagSet) *listFlags {
	lf := &listFlags{filters: map[string]*string{}}
	fs.StringVar(&lf.collection, "collection", "templates", "collection to list")
	fs.IntVar(&lf.page, "page", 1, "page number")
	for _, key := range []string{
		domain.FilterSearch, domain.FilterStatus, domain.FilterCategory, domain.FilterPlatform,
		domain.FilterPriceMin, domain.FilterPriceMax, domain.FilterSort, domain.FilterRole,
		domain.FilterPriority, domain.FilterRating,
	} {
		lf.filters[key] = fs.String(key, "", key+" filter")
	}
	return lf
}

func (lf *listFlags) start(ctx context.Context, sess *session.Session) error {
	q := url.Values{}
	for key, v := range lf.filters {
		if *v != "" {
			q.Set(key, *v)
		}
	}
	if lf.page > 1 {
		q.Set(domain.FilterPage, strconv.Itoa(lf.page))
	}
	return sess.Start(ctx, domain.Collection(lf.collection), q)
}

func runList(ctx context.Context, sess *session.Session, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	lf := newListFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := lf.start(ctx, sess); err != nil {
		return err
	}
	printListing(w, sess.Listing())
	return nil
}

func runBulk(ctx context.Context, sess *session.Session, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("bulk", flag.ContinueOnError)
	lf := newListFlags(fs)
	action := fs.String("action", "", "action to apply")
	ids := fs.String("ids", "", "comma-separated ids on the listed page (default: whole page)")
	reason := fs.String("reason", "", "reason, required by reject, delete and suspend")
	if err := fs.Parse(args); err != nil || *action == "" {
		return errUsage
	}

	if err := lf.start(ctx, sess); err != nil {
		return err
	}

	if *ids == "" {
		sess.ToggleAll()
	} else {
		for _, id := range parseIDs(*ids) {
			if !sess.Toggle(id) {
				return fmt.Errorf("%s is not on the listed page", id)
			}
		}
	}

	confirm := sess.ConfirmBulk(domain.Action(*action))
	fmt.Fprintln(w, confirm.Title)

	res, err := sess.RunBulk(ctx, domain.Action(*action), *reason)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, res.Message())
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  %s: %s\n", f.ID, f.Message)
	}
	printListing(w, sess.Listing())
	return nil
}

// parseIDs splits a comma-separated id list. Blank and repeated ids are
// dropped; a repeat would toggle the row off again.
func parseIDs(raw string) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func runCategories(ctx context.Context, sess *session.Session, w io.Writer) error {
	if err := sess.ShowCategories(ctx); err != nil {
		return err
	}
	printCategories(w, sess)
	return nil
}

func runMoveCategory(ctx context.Context, sess *session.Session, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("move-category", flag.ContinueOnError)
	id := fs.String("id", "", "category id")
	to := fs.Int("to", 0, "zero-based target position")
	if err := fs.Parse(args); err != nil || *id == "" {
		return errUsage
	}

	if err := sess.ShowCategories(ctx); err != nil {
		return err
	}
	if err := sess.MoveCategoryTo(ctx, *id, *to); err != nil {
		return err
	}
	printCategories(w, sess)
	return nil
}

func printListing(w io.Writer, st listing.State) {
	p := st.Pagination
	fmt.Fprintf(w, "page %d/%d, %d total\n", p.Page, max(p.Pages, 1), p.Total)
	for _, e := range st.Items {
		star := " "
		if e.Featured {
			star = "*"
		}
		fmt.Fprintf(w, "%s %s %s %s\n",
			runewidth.FillRight(runewidth.Truncate(e.ID, 24, "…"), 24),
			star,
			runewidth.FillRight(runewidth.Truncate(e.Title, 40, "…"), 40),
			e.Status,
		)
	}
}

func printCategories(w io.Writer, sess *session.Session) {
	for i, c := range sess.CategoryOrder().Items {
		fmt.Fprintf(w, "%3d. %s (%s)\n", i+1, c.Name, c.ID)
	}
}
