package session

import (
	"context"
	"net/url"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

var _ API = &APIMock{}

type APIMock struct {
	BulkFunc       func(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error)
	CategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	GetFunc        func(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error)
	ListFunc       func(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error)
	ModerateFunc   func(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error
	PatchFunc      func(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error)
	ReorderFunc    func(ctx context.Context, coll domain.Collection, ids []string) error

	calls struct {
		Bulk []struct {
			Ctx    context.Context
			Coll   domain.Collection
			Action domain.Action
			IDs    []string
			Reason string
		}
		Categories []struct {
			Ctx context.Context
		}
		Get []struct {
			Ctx  context.Context
			Coll domain.Collection
			ID   string
		}
		List []struct {
			Ctx    context.Context
			Coll   domain.Collection
			Params url.Values
		}
		Moderate []struct {
			Ctx    context.Context
			Coll   domain.Collection
			ID     string
			Action domain.Action
			Reason string
		}
		Patch []struct {
			Ctx  context.Context
			Coll domain.Collection
			ID   string
			P    domain.Patch
		}
		Reorder []struct {
			Ctx  context.Context
			Coll domain.Collection
			IDs  []string
		}
	}
	lockBulk       sync.RWMutex
	lockCategories sync.RWMutex
	lockGet        sync.RWMutex
	lockList       sync.RWMutex
	lockModerate   sync.RWMutex
	lockPatch      sync.RWMutex
	lockReorder    sync.RWMutex
}

func (mock *APIMock) Bulk(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error) {
	if mock.BulkFunc == nil {
		panic("APIMock.BulkFunc: method is nil but API.Bulk was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Coll   domain.Collection
		Action domain.Action
		IDs    []string
		Reason string
	}{Ctx: ctx, Coll: coll, Action: action, IDs: ids, Reason: reason}
	mock.lockBulk.Lock()
	mock.calls.Bulk = append(mock.calls.Bulk, callInfo)
	mock.lockBulk.Unlock()
	return mock.BulkFunc(ctx, coll, action, ids, reason)
}

func (mock *APIMock) BulkCalls() []struct {
	Ctx    context.Context
	Coll   domain.Collection
	Action domain.Action
	IDs    []string
	Reason string
} {
	mock.lockBulk.RLock()
	calls := mock.calls.Bulk
	mock.lockBulk.RUnlock()
	return calls
}

func (mock *APIMock) Categories(ctx context.Context) ([]domain.Category, error) {
	if mock.CategoriesFunc == nil {
		panic("APIMock.CategoriesFunc: method is nil but API.Categories was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCategories.Lock()
	mock.calls.Categories = append(mock.calls.Categories, callInfo)
	mock.lockCategories.Unlock()
	return mock.CategoriesFunc(ctx)
}

func (mock *APIMock) CategoriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockCategories.RLock()
	calls := mock.calls.Categories
	mock.lockCategories.RUnlock()
	return calls
}

func (mock *APIMock) Get(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error) {
	if mock.GetFunc == nil {
		panic("APIMock.GetFunc: method is nil but API.Get was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Coll domain.Collection
		ID   string
	}{Ctx: ctx, Coll: coll, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, coll, id)
}

func (mock *APIMock) GetCalls() []struct {
	Ctx  context.Context
	Coll domain.Collection
	ID   string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *APIMock) List(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error) {
	if mock.ListFunc == nil {
		panic("APIMock.ListFunc: method is nil but API.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Coll   domain.Collection
		Params url.Values
	}{Ctx: ctx, Coll: coll, Params: params}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, coll, params)
}

func (mock *APIMock) ListCalls() []struct {
	Ctx    context.Context
	Coll   domain.Collection
	Params url.Values
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *APIMock) Moderate(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error {
	if mock.ModerateFunc == nil {
		panic("APIMock.ModerateFunc: method is nil but API.Moderate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Coll   domain.Collection
		ID     string
		Action domain.Action
		Reason string
	}{Ctx: ctx, Coll: coll, ID: id, Action: action, Reason: reason}
	mock.lockModerate.Lock()
	mock.calls.Moderate = append(mock.calls.Moderate, callInfo)
	mock.lockModerate.Unlock()
	return mock.ModerateFunc(ctx, coll, id, action, reason)
}

func (mock *APIMock) ModerateCalls() []struct {
	Ctx    context.Context
	Coll   domain.Collection
	ID     string
	Action domain.Action
	Reason string
} {
	mock.lockModerate.RLock()
	calls := mock.calls.Moderate
	mock.lockModerate.RUnlock()
	return calls
}

func (mock *APIMock) Patch(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error) {
	if mock.PatchFunc == nil {
		panic("APIMock.PatchFunc: method is nil but API.Patch was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Coll domain.Collection
		ID   string
		P    domain.Patch
	}{Ctx: ctx, Coll: coll, ID: id, P: p}
	mock.lockPatch.Lock()
	mock.calls.Patch = append(mock.calls.Patch, callInfo)
	mock.lockPatch.Unlock()
	return mock.PatchFunc(ctx, coll, id, p)
}

func (mock *APIMock) PatchCalls() []struct {
	Ctx  context.Context
	Coll domain.Collection
	ID   string
	P    domain.Patch
} {
	mock.lockPatch.RLock()
	calls := mock.calls.Patch
	mock.lockPatch.RUnlock()
	return calls
}

func (mock *APIMock) Reorder(ctx context.Context, coll domain.Collection, ids []string) error {
	if mock.ReorderFunc == nil {
		panic("APIMock.ReorderFunc: method is nil but API.Reorder was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Coll domain.Collection
		IDs  []string
	}{Ctx: ctx, Coll: coll, IDs: ids}
	mock.lockReorder.Lock()
	mock.calls.Reorder = append(mock.calls.Reorder, callInfo)
	mock.lockReorder.Unlock()
	return mock.ReorderFunc(ctx, coll, ids)
}

func (mock *APIMock) ReorderCalls() []struct {
	Ctx  context.Context
	Coll domain.Collection
	IDs  []string
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}
