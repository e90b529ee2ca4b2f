package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func TestMutator_Apply_Dispatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	api := memory.NewPaperless()
	api.AddCorrespondent(1, "A")
	api.AddCorrespondent(2, "B")
	api.AddDocument(10, "doc", 1)
	m := NewMutator(api, false)
	ctx := context.Background()

	res, err := m.Apply(ctx, domain.SetCorrespondent{DocumentIDs: []int{10}, Correspondent: domain.Correspondent{ID: 2}})
	require.NoError(t, err)
	assert.False(t, res.Skipped)

	res, err = m.Apply(ctx, domain.DeleteCorrespondent{Correspondent: domain.Correspondent{ID: 1}})
	require.NoError(t, err)
	assert.False(t, res.Skipped)

	res, err = m.Apply(ctx, domain.SubmitDocument{Path: path})
	require.NoError(t, err)
	assert.NotEmpty(t, res.TaskHandle)

	assert.Equal(t, 1, api.CallCount("BulkSetCorrespondent"))
	assert.Equal(t, 1, api.CallCount("DeleteCorrespondent"))
	assert.Equal(t, 1, api.CallCount("UploadDocument"))
}

func TestMutator_Apply_NoOpNeverCallsAPI(t *testing.T) {
	api := memory.NewPaperless()
	m := NewMutator(api, true)
	ctx := context.Background()

	mutations := []domain.Mutation{
		domain.SetCorrespondent{DocumentIDs: []int{1}},
		domain.DeleteCorrespondent{},
		domain.SubmitDocument{Path: "x.pdf"},
	}
	for _, mu := range mutations {
		res, err := m.Apply(ctx, mu)
		require.NoError(t, err)
		assert.True(t, res.Skipped)
	}

	assert.True(t, m.NoOp())
	assert.Empty(t, api.Calls())
}

func TestMutator_Apply_WrapsErrors(t *testing.T) {
	api := memory.NewPaperless()
	m := NewMutator(api, false)

	_, err := m.Apply(context.Background(), domain.DeleteCorrespondent{Correspondent: domain.Correspondent{ID: 3}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "delete correspondent 3")
}
