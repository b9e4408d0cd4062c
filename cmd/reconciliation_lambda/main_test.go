package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeReaper struct {
	reaped int
	err    error
}

func (f fakeReaper) ReapAbandoned(context.Context) (int, error) {
	return f.reaped, f.err
}

func TestHandleRequest(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		h := &reconciliationHandler{payments: fakeReaper{reaped: 3}, logger: zap.New(core)}

		assert.NoError(t, h.HandleRequest(context.Background()))
		entries := logs.FilterMessage("reconciliation finished").All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, int64(3), entries[0].ContextMap()["reaped"])
		}
	})

	t.Run("Partial Failure", func(t *testing.T) {
		h := &reconciliationHandler{payments: fakeReaper{reaped: 1, err: assert.AnError}, logger: zap.NewNop()}

		assert.ErrorIs(t, h.HandleRequest(context.Background()), assert.AnError)
	})
}
