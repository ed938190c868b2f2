package detail

import (
	"context"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

var _ detailAPI = &detailAPIMock{}

type detailAPIMock struct {
	GetFunc      func(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error)
	PatchFunc    func(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error)
	ModerateFunc func(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error

	calls struct {
		Get []struct {
			Ctx  context.Context
			Coll domain.Collection
			ID   string
		}
		Patch []struct {
			Ctx  context.Context
			Coll domain.Collection
			ID   string
			P    domain.Patch
		}
		Moderate []struct {
			Ctx    context.Context
			Coll   domain.Collection
			ID     string
			Action domain.Action
			Reason string
		}
	}
	lockGet      sync.RWMutex
	lockPatch    sync.RWMutex
	lockModerate sync.RWMutex
}

func (mock *detailAPIMock) Get(ctx context.Context, coll domain.Collection, id string) (*domain.EntityDetail, error) {
	if mock.GetFunc == nil {
		panic("detailAPIMock.GetFunc: method is nil but detailAPI.Get was just called")
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

func (mock *detailAPIMock) GetCalls() []struct {
	Ctx  context.Context
	Coll domain.Collection
	ID   string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *detailAPIMock) Patch(ctx context.Context, coll domain.Collection, id string, p domain.Patch) (*domain.EntityDetail, error) {
	if mock.PatchFunc == nil {
		panic("detailAPIMock.PatchFunc: method is nil but detailAPI.Patch was just called")
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

func (mock *detailAPIMock) PatchCalls() []struct {
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

func (mock *detailAPIMock) Moderate(ctx context.Context, coll domain.Collection, id string, action domain.Action, reason string) error {
	if mock.ModerateFunc == nil {
		panic("detailAPIMock.ModerateFunc: method is nil but detailAPI.Moderate was just called")
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

func (mock *detailAPIMock) ModerateCalls() []struct {
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
