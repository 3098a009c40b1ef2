// Package mocks provides centralized mock implementations for testing.
//
// Each mock has a function field per interface method. When the field is nil
// the mock falls back to its default return values, so tests only set up the
// behaviour they care about:
//
//	mockStore := &mocks.MockTaskStore{
//	    DeleteFn: func(ctx context.Context, id string) error {
//	        return store.ErrTaskNotFound
//	    },
//	}
package mocks
