package listing

import (
	"context"
	"net/url"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

var _ lister = &listerMock{}

type listerMock struct {
	ListFunc func(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error)

	calls struct {
		List []struct {
			Ctx    context.Context
			Coll   domain.Collection
			Params url.Values
		}
	}
	lockList sync.RWMutex
}

func (mock *listerMock) List(ctx context.Context, coll domain.Collection, params url.Values) (*domain.Page, error) {
	if mock.ListFunc == nil {
		panic("listerMock.ListFunc: method is nil but lister.List was just called")
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

func (mock *listerMock) ListCalls() []struct {
	Ctx    context.Context
	Coll   domain.Collection
	Params url.Values
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
