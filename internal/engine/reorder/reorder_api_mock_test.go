package reorder

import (
	"context"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

var _ reorderAPI = &reorderAPIMock{}

type reorderAPIMock struct {
	CategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	ReorderFunc    func(ctx context.Context, coll domain.Collection, ids []string) error

	calls struct {
		Categories []struct {
			Ctx context.Context
		}
		Reorder []struct {
			Ctx  context.Context
			Coll domain.Collection
			IDs  []string
		}
	}
	lockCategories sync.RWMutex
	lockReorder    sync.RWMutex
}

func (mock *reorderAPIMock) Categories(ctx context.Context) ([]domain.Category, error) {
	if mock.CategoriesFunc == nil {
		panic("reorderAPIMock.CategoriesFunc: method is nil but reorderAPI.Categories was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCategories.Lock()
	mock.calls.Categories = append(mock.calls.Categories, callInfo)
	mock.lockCategories.Unlock()
	return mock.CategoriesFunc(ctx)
}

func (mock *reorderAPIMock) CategoriesCalls() []struct {
	Ctx context.Context
} {
	mock.lockCategories.RLock()
	calls := mock.calls.Categories
	mock.lockCategories.RUnlock()
	return calls
}

func (mock *reorderAPIMock) Reorder(ctx context.Context, coll domain.Collection, ids []string) error {
	if mock.ReorderFunc == nil {
		panic("reorderAPIMock.ReorderFunc: method is nil but reorderAPI.Reorder was just called")
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

func (mock *reorderAPIMock) ReorderCalls() []struct {
	Ctx  context.Context
	Coll domain.Collection
	IDs  []string
} {
	mock.lockReorder.RLock()
	calls := mock.calls.Reorder
	mock.lockReorder.RUnlock()
	return calls
}
