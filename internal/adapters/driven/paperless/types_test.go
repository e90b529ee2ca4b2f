package paperless

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func TestFlexibleID(t *testing.T) {
	tests := []struct {
		raw     string
		want    *int
		wantErr bool
	}{
		{raw: `null`},
		{raw: `""`},
		{raw: `17`, want: intPtr(17)},
		{raw: `"17"`, want: intPtr(17)},
		{raw: `"abc"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var id flexibleID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.value)
		})
	}
}

func TestTaskJSON_ToDomain(t *testing.T) {
	var task taskJSON
	require.NoError(t, json.Unmarshal([]byte(`{
		"task_id": "h1", "task_file_name": null, "status": "RETRY", "result": null, "related_document": null
	}`), &task))

	got := task.toDomain()
	assert.Equal(t, domain.Task{Handle: "h1", Status: domain.TaskStarted}, got)
}

func TestDocumentJSON_ToDomain(t *testing.T) {
	var doc documentJSON
	require.NoError(t, json.Unmarshal([]byte(`{"id": 4, "title": "Bill", "tags": [], "correspondent": null}`), &doc))

	assert.Equal(t, domain.Document{ID: 4, Title: "Bill"}, doc.toDomain())
}

func intPtr(i int) *int { return &i }
