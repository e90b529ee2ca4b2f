package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func newMigrationFixture(noop bool) (*memory.Paperless, *MigrationService) {
	api := memory.NewPaperless()
	svc := NewMigrationService(
		NewCorrespondentService(api),
		NewDocumentService(api),
		NewMutator(api, noop),
	)
	return api, svc
}

func correspondentOf(t *testing.T, api *memory.Paperless, docID int) int {
	t.Helper()
	doc, ok := api.Document(docID)
	require.True(t, ok)
	if doc.CorrespondentID == nil {
		return 0
	}
	return *doc.CorrespondentID
}

func TestMigrationService_Migrate_MovesExactlySourceDocuments(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(1, "Old")
	api.AddCorrespondent(2, "New")
	api.AddCorrespondent(3, "Other")
	api.AddDocument(10, "a", 1)
	api.AddDocument(11, "b", 1)
	api.AddDocument(20, "c", 2)
	api.AddDocument(30, "d", 3)
	api.AddDocument(40, "e", 0)

	report, err := svc.Migrate(context.Background(), []int{1}, 2)
	require.NoError(t, err)
	require.NoError(t, report.Err())

	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, []int{10, 11}, report.Outcomes[0].DocumentIDs)
	assert.Equal(t, 2, report.Moved())
	assert.Equal(t, domain.Correspondent{ID: 2, Name: "New", DocumentCount: 1}, report.Destination)

	assert.Equal(t, 2, correspondentOf(t, api, 10))
	assert.Equal(t, 2, correspondentOf(t, api, 11))
	assert.Equal(t, 2, correspondentOf(t, api, 20))
	assert.Equal(t, 3, correspondentOf(t, api, 30))
	assert.Equal(t, 0, correspondentOf(t, api, 40))

	assert.Equal(t, 1, api.CallCount("BulkSetCorrespondent"))
}

func TestMigrationService_Migrate_EmptySourceIsNoOpBulkCall(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(1, "Empty")
	api.AddCorrespondent(2, "Dest")

	report, err := svc.Migrate(context.Background(), []int{1}, 2)
	require.NoError(t, err)
	require.NoError(t, report.Err())

	assert.Empty(t, report.Outcomes[0].DocumentIDs)
	assert.Equal(t, 1, api.CallCount("BulkSetCorrespondent"))
}

func TestMigrationService_Migrate_InvalidDestinationStartsNothing(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(1, "Old")
	api.AddDocument(10, "a", 1)

	report, err := svc.Migrate(context.Background(), []int{1}, 999)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, api.CallCount("ListDocuments"))
	assert.Equal(t, 0, api.CallCount("BulkSetCorrespondent"))
	assert.Equal(t, 1, correspondentOf(t, api, 10))
}

func TestMigrationService_Migrate_PartialSuccess(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(5, "Source")
	api.AddCorrespondent(2, "Dest")
	api.AddDocument(10, "a", 5)

	report, err := svc.Migrate(context.Background(), []int{5, 999}, 2)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)

	assert.True(t, report.Outcomes[0].Succeeded())
	assert.Equal(t, 2, correspondentOf(t, api, 10))

	assert.Equal(t, 999, report.Outcomes[1].SourceID)
	assert.ErrorIs(t, report.Outcomes[1].Err, domain.ErrNotFound)
	assert.Nil(t, report.Outcomes[1].Source)

	assert.ErrorIs(t, report.Err(), domain.ErrNotFound)
}

func TestMigrationService_Migrate_FailureDoesNotStopLaterSources(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(1, "A")
	api.AddCorrespondent(3, "B")
	api.AddCorrespondent(2, "Dest")
	api.AddDocument(10, "a", 1)
	api.AddDocument(30, "b", 3)
	api.FailNext("BulkSetCorrespondent", domain.ErrTransport)

	report, err := svc.Migrate(context.Background(), []int{1, 3}, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, report.Outcomes[0].Err, domain.ErrTransport)
	assert.True(t, report.Outcomes[1].Succeeded())
	assert.Equal(t, 1, correspondentOf(t, api, 10))
	assert.Equal(t, 2, correspondentOf(t, api, 30))
	assert.Equal(t, 2, api.CallCount("BulkSetCorrespondent"))
}

func TestMigrationService_Migrate_EnumerationFailureRecorded(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(1, "A")
	api.AddCorrespondent(2, "Dest")
	api.FailNext("ListDocuments", domain.ErrTransport)

	report, err := svc.Migrate(context.Background(), []int{1}, 2)
	require.NoError(t, err)

	assert.ErrorIs(t, report.Outcomes[0].Err, domain.ErrTransport)
	assert.Equal(t, 0, api.CallCount("BulkSetCorrespondent"))
}

func TestMigrationService_Migrate_DeduplicatesAndSkipsDestination(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(1, "A")
	api.AddCorrespondent(2, "Dest")

	report, err := svc.Migrate(context.Background(), []int{1, 2, 1}, 2)
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, 1, report.Outcomes[0].SourceID)
	assert.Equal(t, 2, report.Outcomes[1].SourceID)
	assert.True(t, report.Outcomes[1].Skipped)
	assert.NoError(t, report.Err())
	assert.Equal(t, 1, api.CallCount("BulkSetCorrespondent"))
}

func TestMigrationService_Migrate_NoOpReadsButDoesNotWrite(t *testing.T) {
	api, svc := newMigrationFixture(true)
	api.AddCorrespondent(1, "A")
	api.AddCorrespondent(2, "Dest")
	api.AddDocument(10, "a", 1)

	report, err := svc.Migrate(context.Background(), []int{1}, 2)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.True(t, report.Outcomes[0].Skipped)
	assert.Equal(t, []int{10}, report.Outcomes[0].DocumentIDs)

	assert.Equal(t, 2, api.CallCount("GetCorrespondent"))
	assert.Equal(t, 1, api.CallCount("ListDocuments"))
	assert.Equal(t, 0, api.CallCount("BulkSetCorrespondent"))
	assert.Equal(t, 1, correspondentOf(t, api, 10))
}

func TestMigrationService_DeleteCorrespondent_SafetyGate(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(7, "Busy")
	api.AddDocument(1, "a", 7)
	api.AddDocument(2, "b", 7)
	api.AddDocument(3, "c", 7)
	ctx := context.Background()

	_, _, err := svc.DeleteCorrespondent(ctx, 7, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnableToDelete)
	assert.Contains(t, err.Error(), "3 documents refer to this ID")
	assert.Equal(t, 0, api.CallCount("DeleteCorrespondent"))

	c, skipped, err := svc.DeleteCorrespondent(ctx, 7, true)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, "Busy", c.Name)

	_, err = NewCorrespondentService(api).ResolveByID(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMigrationService_DeleteCorrespondent_Empty(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(7, "Idle")

	_, _, err := svc.DeleteCorrespondent(context.Background(), 7, false)
	require.NoError(t, err)
	assert.Equal(t, 1, api.CallCount("DeleteCorrespondent"))
}

func TestMigrationService_DeleteCorrespondent_NotFound(t *testing.T) {
	_, svc := newMigrationFixture(false)

	_, _, err := svc.DeleteCorrespondent(context.Background(), 404, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMigrationService_DeleteCorrespondent_ConcurrentDelete(t *testing.T) {
	api, svc := newMigrationFixture(false)
	api.AddCorrespondent(7, "Gone")
	api.FailNext("DeleteCorrespondent", domain.ErrNotFound)

	_, _, err := svc.DeleteCorrespondent(context.Background(), 7, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMigrationService_DeleteCorrespondent_NoOp(t *testing.T) {
	api, svc := newMigrationFixture(true)
	api.AddCorrespondent(7, "Idle")

	_, skipped, err := svc.DeleteCorrespondent(context.Background(), 7, false)
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, 0, api.CallCount("DeleteCorrespondent"))

	_, err = api.GetCorrespondent(context.Background(), 7)
	assert.NoError(t, err)
}
