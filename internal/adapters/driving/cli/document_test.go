package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func TestListDocumentsCmd(t *testing.T) {
	env := setupTestServices(t)
	seedCorrespondents(env)

	require.NoError(t, env.run("list-documents"))

	assert.Equal(t, "10: Invoice [1, 4]\n11: Receipt []\n20: Contract []\n", env.out.String())
}

func TestListDocumentsCmd_ByCorrespondent(t *testing.T) {
	env := setupTestServices(t)
	seedCorrespondents(env)

	require.NoError(t, env.run("list-documents", "-c", "globex"))

	assert.Equal(t, "20: Contract []\n", env.out.String())
}

func TestListDocumentsCmd_MultiplePages(t *testing.T) {
	env := setupTestServices(t)
	env.api.PageSize = 2
	for id := 1; id <= 5; id++ {
		env.api.AddDocument(id, "doc", 0)
	}

	require.NoError(t, env.run("list-document-ids"))

	assert.Equal(t, "1\n2\n3\n4\n5\n", env.out.String())
	assert.Equal(t, 3, env.api.CallCount("ListDocuments"))
}

func TestListDocumentsCmd_AmbiguousCorrespondent(t *testing.T) {
	env := setupTestServices(t)
	env.api.AddCorrespondent(1, "Acme")
	env.api.AddCorrespondent(2, "Acme")

	err := env.run("list-documents", "--correspondent", "acme")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAmbiguous)
	assert.Equal(t, 0, env.api.CallCount("ListDocuments"))
}

func TestListDocumentsCmd_UnknownCorrespondent(t *testing.T) {
	env := setupTestServices(t)
	seedCorrespondents(env)

	err := env.run("list-document-ids", "-c", "nobody")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDocumentsCmd_PageError(t *testing.T) {
	env := setupTestServices(t)
	seedCorrespondents(env)
	env.api.FailNext("ListDocuments", domain.ErrTransport)

	err := env.run("list-documents")

	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestListDocumentIDsCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	seedCorrespondents(env)

	require.NoError(t, env.run("-o", "json", "list-document-ids", "-c", "Acme Corp"))

	var ids []int
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &ids))
	assert.Equal(t, []int{10, 11}, ids)
}

func TestListDocumentsCmd_JSONEmpty(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, env.run("-o", "json", "list-documents"))

	assert.JSONEq(t, "[]", env.out.String())
}
