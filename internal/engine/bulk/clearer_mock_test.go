package bulk

import (
	"sync"
)

var _ clearer = &clearerMock{}

type clearerMock struct {
	ClearFunc func()

	calls struct {
		Clear []struct{}
	}
	lockClear sync.RWMutex
}

func (mock *clearerMock) Clear() {
	if mock.ClearFunc == nil {
		panic("clearerMock.ClearFunc: method is nil but clearer.Clear was just called")
	}
	mock.lockClear.Lock()
	mock.calls.Clear = append(mock.calls.Clear, struct{}{})
	mock.lockClear.Unlock()
	mock.ClearFunc()
}

func (mock *clearerMock) ClearCalls() []struct{} {
	mock.lockClear.RLock()
	calls := mock.calls.Clear
	mock.lockClear.RUnlock()
	return calls
}
