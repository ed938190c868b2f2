package bulk

import (
	"context"
	"sync"
)

var _ reloader = &reloaderMock{}

type reloaderMock struct {
	ReloadFunc func(ctx context.Context) error

	calls struct {
		Reload []struct {
			Ctx context.Context
		}
	}
	lockReload sync.RWMutex
}

func (mock *reloaderMock) Reload(ctx context.Context) error {
	if mock.ReloadFunc == nil {
		panic("reloaderMock.ReloadFunc: method is nil but reloader.Reload was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockReload.Lock()
	mock.calls.Reload = append(mock.calls.Reload, callInfo)
	mock.lockReload.Unlock()
	return mock.ReloadFunc(ctx)
}

func (mock *reloaderMock) ReloadCalls() []struct {
	Ctx context.Context
} {
	mock.lockReload.RLock()
	calls := mock.calls.Reload
	mock.lockReload.RUnlock()
	return calls
}
