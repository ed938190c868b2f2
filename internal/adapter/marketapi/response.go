package marketapi

import (
	"encoding/json"
	"time"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// envelope is the JSON wrapper every endpoint responds with.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Fields  []apiFieldError `json:"fields"`
}

type apiFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// apiEntity is a listing row. Creators and users report Name instead of Title.
type apiEntity struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	Title       string         `json:"title"`
	Name        string         `json:"name"`
	Creator     string         `json:"creator"`
	Category    string         `json:"category"`
	Platform    string         `json:"platform"`
	Price       *float64       `json:"price"`
	Featured    bool           `json:"isFeatured"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	Attributes  map[string]any `json:"attributes"`
}

type apiStatusChange struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	By     string    `json:"by"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

type apiDetail struct {
	apiEntity
	Images  []string          `json:"images"`
	Tags    []string          `json:"tags"`
	History []apiStatusChange `json:"history"`
	Stats   map[string]int    `json:"stats"`
}

type apiPagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type apiList struct {
	Items      []apiEntity   `json:"items"`
	Pagination apiPagination `json:"pagination"`
}

type apiPatch struct {
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Featured    *bool    `json:"isFeatured,omitempty"`
}

type apiBulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
	Reason string   `json:"reason,omitempty"`
}

type apiBulkResult struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Failures  []struct {
		ID    string `json:"id"`
		Error string `json:"error"`
	} `json:"failures"`
}

type apiReason struct {
	Reason string `json:"reason,omitempty"`
}

type apiReorder struct {
	IDs []string `json:"ids"`
}

type apiCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}

type apiHit struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Path     string `json:"path"`
}

func mapEntity(e apiEntity) domain.Entity {
	title := e.Title
	if title == "" {
		title = e.Name
	}
	return domain.Entity{
		ID:          e.ID,
		Status:      domain.Status(e.Status),
		Title:       title,
		Creator:     e.Creator,
		Category:    e.Category,
		Platform:    e.Platform,
		Price:       e.Price,
		Featured:    e.Featured,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		Attributes:  e.Attributes,
	}
}

func mapDetail(d apiDetail) *domain.EntityDetail {
	out := &domain.EntityDetail{
		Entity: mapEntity(d.apiEntity),
		Images: d.Images,
		Tags:   d.Tags,
		Stats:  d.Stats,
	}
	for _, h := range d.History {
		out.History = append(out.History, domain.StatusChange{
			From:   domain.Status(h.From),
			To:     domain.Status(h.To),
			By:     h.By,
			Reason: h.Reason,
			At:     h.At,
		})
	}
	return out
}

func mapPage(l apiList) *domain.Page {
	page := &domain.Page{
		Items: make([]domain.Entity, 0, len(l.Items)),
		Pagination: domain.Pagination{
			Page:  l.Pagination.Page,
			Limit: l.Pagination.Limit,
			Total: l.Pagination.Total,
			Pages: l.Pagination.Pages,
		},
	}
	for _, it := range l.Items {
		page.Items = append(page.Items, mapEntity(it))
	}
	return page
}

func mapPatch(p domain.Patch) apiPatch {
	return apiPatch{
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Featured:    p.Featured,
	}
}

func mapBulk(r apiBulkResult) domain.BulkOutcome {
	out := domain.BulkOutcome{Succeeded: r.Succeeded, Failed: r.Failed}
	for _, f := range r.Failures {
		out.Failures = append(out.Failures, domain.ItemFailure{ID: f.ID, Message: f.Error})
	}
	return out
}

func mapHits(hits []apiHit) []domain.SearchHit {
	out := make([]domain.SearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, domain.SearchHit{
			ID:       h.ID,
			Kind:     domain.HitKind(h.Kind),
			Title:    h.Title,
			Subtitle: h.Subtitle,
			Path:     h.Path,
		})
	}
	return out
}
