package typeahead

import (
	"context"
	"sync"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

var _ searcher = &searcherMock{}

type searcherMock struct {
	SearchFunc  func(ctx context.Context, q string, limit int) ([]domain.SearchHit, error)
	SuggestFunc func(ctx context.Context, q string) ([]domain.SearchHit, error)

	calls struct {
		Search []struct {
			Ctx   context.Context
			Q     string
			Limit int
		}
		Suggest []struct {
			Ctx context.Context
			Q   string
		}
	}
	lockSearch  sync.RWMutex
	lockSuggest sync.RWMutex
}

func (mock *searcherMock) Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error) {
	if mock.SearchFunc == nil {
		panic("searcherMock.SearchFunc: method is nil but searcher.Search was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Q     string
		Limit int
	}{Ctx: ctx, Q: q, Limit: limit}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, q, limit)
}

func (mock *searcherMock) SearchCalls() []struct {
	Ctx   context.Context
	Q     string
	Limit int
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}

func (mock *searcherMock) Suggest(ctx context.Context, q string) ([]domain.SearchHit, error) {
	if mock.SuggestFunc == nil {
		panic("searcherMock.SuggestFunc: method is nil but searcher.Suggest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   string
	}{Ctx: ctx, Q: q}
	mock.lockSuggest.Lock()
	mock.calls.Suggest = append(mock.calls.Suggest, callInfo)
	mock.lockSuggest.Unlock()
	return mock.SuggestFunc(ctx, q)
}

func (mock *searcherMock) SuggestCalls() []struct {
	Ctx context.Context
	Q   string
} {
	mock.lockSuggest.RLock()
	calls := mock.calls.Suggest
	mock.lockSuggest.RUnlock()
	return calls
}
