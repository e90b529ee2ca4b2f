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
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
)

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))
	return path
}

func newUploadFixture(noop bool) (*memory.Paperless, *UploadService) {
	api := memory.NewPaperless()
	svc := NewUploadService(NewMutator(api, noop), NewTaskPoller(api, newFakeClock()))
	return api, svc
}

func TestUploadService_Upload_MissingFile(t *testing.T) {
	api, svc := newUploadFixture(false)

	_, _, err := svc.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Equal(t, 0, api.CallCount("UploadDocument"))
}

func TestUploadService_Upload_Directory(t *testing.T) {
	_, svc := newUploadFixture(false)

	_, _, err := svc.Upload(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestUploadService_UploadAndWait_Success(t *testing.T) {
	api, svc := newUploadFixture(false)
	path := writeFile(t, "invoice.pdf")

	var seen []domain.TaskStatus
	outcome := svc.UploadAndWait(context.Background(), path, driving.AwaitOptions{}, func(task domain.Task) {
		assert.Equal(t, "invoice.pdf", task.FileName)
		seen = append(seen, task.Status)
	})

	require.NoError(t, outcome.Err)
	assert.NotEmpty(t, outcome.Handle)
	require.NotNil(t, outcome.Result)
	require.NotNil(t, outcome.Result.RelatedDocument)
	assert.Contains(t, outcome.Result.Result, "Success")
	assert.Equal(t, []domain.TaskStatus{domain.TaskPending, domain.TaskSuccess}, seen)

	doc, ok := api.Document(*outcome.Result.RelatedDocument)
	require.True(t, ok)
	assert.Equal(t, "invoice", doc.Title)
}

func TestUploadService_UploadAndWait_TaskFailure(t *testing.T) {
	api, svc := newUploadFixture(false)
	api.QueueUploadScript(
		memory.TaskStep{Status: domain.TaskStarted},
		memory.TaskStep{Status: domain.TaskFailure, Result: "duplicate of document 4"},
	)
	path := writeFile(t, "dup.pdf")

	outcome := svc.UploadAndWait(context.Background(), path, driving.AwaitOptions{}, nil)

	require.Error(t, outcome.Err)
	assert.ErrorIs(t, outcome.Err, domain.ErrTaskFailed)
	assert.Contains(t, outcome.Err.Error(), "duplicate of document 4")
	assert.Nil(t, outcome.Result)
}

func TestUploadService_UploadAndWait_NoOp(t *testing.T) {
	api, svc := newUploadFixture(true)
	path := writeFile(t, "a.pdf")

	outcome := svc.UploadAndWait(context.Background(), path, driving.AwaitOptions{}, nil)

	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Skipped)
	assert.Empty(t, outcome.Handle)
	assert.Empty(t, api.Calls())
}

func TestUploadService_UploadBatch_ContinuesPastFailures(t *testing.T) {
	api, svc := newUploadFixture(false)
	good := writeFile(t, "good.pdf")
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	second := writeFile(t, "second.pdf")

	report := svc.UploadBatch(context.Background(), []string{good, missing, second}, driving.AwaitOptions{}, nil)

	require.Len(t, report.Outcomes, 3)
	assert.NoError(t, report.Outcomes[0].Err)
	assert.ErrorIs(t, report.Outcomes[1].Err, domain.ErrFileNotFound)
	assert.NoError(t, report.Outcomes[2].Err)
	assert.ErrorIs(t, report.Err(), domain.ErrFileNotFound)
	assert.Equal(t, 2, api.CallCount("UploadDocument"))
}

func TestUploadService_UploadBatch_Sequential(t *testing.T) {
	api, svc := newUploadFixture(false)
	a := writeFile(t, "a.pdf")
	b := writeFile(t, "b.pdf")

	report := svc.UploadBatch(context.Background(), []string{a, b}, driving.AwaitOptions{}, nil)
	require.NoError(t, report.Err())

	var methods []string
	for _, c := range api.Calls() {
		methods = append(methods, c.Method)
	}
	// The second upload starts only after the first task reached a terminal status.
	assert.Equal(t, []string{"UploadDocument", "GetTask", "GetTask", "UploadDocument", "GetTask", "GetTask"}, methods)
}

func TestUploadService_UploadBatch_Cancelled(t *testing.T) {
	api, svc := newUploadFixture(false)
	a := writeFile(t, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := svc.UploadBatch(ctx, []string{a, a}, driving.AwaitOptions{}, nil)

	require.Len(t, report.Outcomes, 2)
	for _, o := range report.Outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
	assert.Equal(t, 0, api.CallCount("UploadDocument"))
}
