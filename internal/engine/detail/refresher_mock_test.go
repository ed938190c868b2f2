package detail

import (
	"context"
	"sync"
)

var _ refresher = &refresherMock{}

type refresherMock struct {
	ReloadFunc func(ctx context.Context) error

	calls struct {
		Reload []struct {
			Ctx context.Context
		}
	}
	lockReload sync.RWMutex
}

func (mock *refresherMock) Reload(ctx context.Context) error {
	if mock.ReloadFunc == nil {
		panic("refresherMock.ReloadFunc: method is nil but refresher.Reload was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockReload.Lock()
	mock.calls.Reload = append(mock.calls.Reload, callInfo)
	mock.lockReload.Unlock()
	return mock.ReloadFunc(ctx)
}

func (mock *refresherMock) ReloadCalls() []struct {
	Ctx context.Context
} {
	mock.lockReload.RLock()
	calls := mock.calls.Reload
	mock.lockReload.RUnlock()
	return calls
}
