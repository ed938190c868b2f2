package marketapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// List fetches one page of a collection. params is the canonical query built
// by the engine; it is sent as-is.
func (c *Client) List(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error) {
	var resp apiList
	if err := c.call(ctx, http.MethodGet, collectionPath(coll), params, nil, &resp); err != nil {
		return nil, err
	}
	page := mapPage(resp)

	c.log.DebugContext(ctx, "list fetched",
		slog.String("collection", coll.String()),
		slog.Int("items", len(page.Items)),
		slog.Int("page", page.Pagination.Page),
		slog.Int("total", page.Pagination.Total),
	)
	return page, nil
}

// Get fetches the full detail of one entity.
func (c *Client) Get(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error) {
	var resp apiDetail
	if err := c.call(ctx, http.MethodGet, collectionPath(coll, id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return mapDetail(resp), nil
}

// Patch sends the changed fields of an entity. The service may echo the
// updated detail or respond with no content; nil is returned in that case.
func (c *Client) Patch(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error) {
	var resp *apiDetail
	if err := c.call(ctx, http.MethodPatch, collectionPath(coll, id), nil, mapPatch(p), &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return mapDetail(*resp), nil
}

// Bulk applies one action to many ids in a single request.
func (c *Client) Bulk(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error) {
	body := apiBulkRequest{Action: action.String(), IDs: ids, Reason: reason}

	var resp apiBulkResult
	if err := c.call(ctx, http.MethodPost, collectionPath(coll, "bulk"), nil, body, &resp); err != nil {
		return domain.BulkOutcome{}, err
	}
	return mapBulk(resp), nil
}

// Moderate requests a single-entity status transition.
func (c *Client) Moderate(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error {
	return c.call(ctx, http.MethodPost, collectionPath(coll, id, action.String()), nil, apiReason{Reason: reason}, nil)
}

// Reorder sends the complete ordered id list of a collection.
func (c *Client) Reorder(ctx context.Context, coll domain.Collection, ids []string) error {
	return c.call(ctx, http.MethodPut, collectionPath(coll, "order"), nil, apiReorder{IDs: ids}, nil)
}

// Categories returns the categories in their canonical order.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var resp []apiCategory
	if err := c.call(ctx, http.MethodGet, collectionPath(domain.CollectionCategories), nil, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(resp))
	for _, cat := range resp {
		out = append(out, domain.Category{ID: cat.ID, Name: cat.Name, Slug: cat.Slug, Order: cat.Order})
	}
	return out, nil
}

// Suggest returns lightweight typeahead suggestions.
func (c *Client) Suggest(ctx context.Context, q string) ([]domain.SearchHit, error) {
	var resp []apiHit
	if err := c.call(ctx, http.MethodGet, "/search/suggest", url.Values{"q": {q}}, nil, &resp); err != nil {
		return nil, err
	}
	return mapHits(resp), nil
}

// Search runs the full search and returns at most limit results (0 = server default).
func (c *Client) Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error) {
	params := url.Values{"q": {q}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp []apiHit
	if err := c.call(ctx, http.MethodGet, "/search", params, nil, &resp); err != nil {
		return nil, err
	}
	return mapHits(resp), nil
}
