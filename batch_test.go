package paxada_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/ir"
)

func TestExtractAll_KeepsOrder(t *testing.T) {
	var docs []ir.Document
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			e := postEntity()
			e.Name = fmt.Sprintf("entity%d", i)
			docs = append(docs, ir.Document{Kind: ir.DocEntity, Entity: &e})
			continue
		}
		r := getDoc()
		docs = append(docs, ir.Document{Kind: ir.DocRoute, Route: &r})
	}
	docs = append(docs, ir.Document{Kind: ir.DocRoute, File: "broken.doc.yaml"})

	results, err := paxada.ExtractAll(context.Background(), docs, 3)
	require.NoError(t, err)
	require.Len(t, results, len(docs))
	for i, res := range results[:20] {
		require.NoError(t, res.Err)
		if i%2 == 0 {
			assert.Equal(t, fmt.Sprintf("Entity%d", i), res.Entity.Name)
		} else {
			assert.Equal(t, "GetPost", res.Route.Name)
		}
	}
	assert.Error(t, results[20].Err)
	assert.Equal(t, paxada.ErrCodeInvalidInput, paxada.GetCode(results[20].Err))
}

func TestExtractAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := postEntity()
	_, err := paxada.ExtractAll(ctx, []ir.Document{{Kind: ir.DocEntity, Entity: &e}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
