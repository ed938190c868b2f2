package bulk

import (
	"context"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

var _ bulkAPI = &bulkAPIMock{}

type bulkAPIMock struct {
	BulkFunc func(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error)

	calls struct {
		Bulk []struct {
			Ctx    context.Context
			Coll   domain.Collection
			Action domain.Action
			IDs    []string
			Reason string
		}
	}
	lockBulk sync.RWMutex
}

func (mock *bulkAPIMock) Bulk(ctx context.Context, coll domain.Collection, action domain.Action, ids []string, reason string) (domain.BulkOutcome, error) {
	if mock.BulkFunc == nil {
		panic("bulkAPIMock.BulkFunc: method is nil but bulkAPI.Bulk was just called")
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

func (mock *bulkAPIMock) BulkCalls() []struct {
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
