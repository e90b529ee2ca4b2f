package paperless

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// listResponse is the envelope of every paginated listing.
type listResponse[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

type correspondentJSON struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	DocumentCount int    `json:"document_count"`
}

func (c correspondentJSON) toDomain() domain.Correspondent {
	return domain.Correspondent{ID: c.ID, Name: c.Name, DocumentCount: c.DocumentCount}
}

type documentJSON struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Tags          []tagRef `json:"tags"`
	Correspondent *int     `json:"correspondent"`
}

func (d documentJSON) toDomain() domain.Document {
	doc := domain.Document{ID: d.ID, Title: d.Title, CorrespondentID: d.Correspondent}
	if len(d.Tags) > 0 {
		doc.Tags = make([]string, len(d.Tags))
		for i, t := range d.Tags {
			doc.Tags[i] = string(t)
		}
	}
	return doc
}

// tagRef is a tag as the server lists it on a document: usually a numeric
// id, a name on some versions.
type tagRef string

func (t *tagRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = tagRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tag: %w", err)
	}
	*t = tagRef(n.String())
	return nil
}

// flexibleID decodes an id the server may send as a number, a numeric
// string or null.
type flexibleID struct {
	value *int
}

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		f.value = nil
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			f.value = nil
			return nil
		}
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("id %q: %w", raw, err)
	}
	f.value = &id
	return nil
}

type taskJSON struct {
	TaskID          string     `json:"task_id"`
	TaskFileName    *string    `json:"task_file_name"`
	Status          string     `json:"status"`
	Result          *string    `json:"result"`
	RelatedDocument flexibleID `json:"related_document"`
}

func (t taskJSON) toDomain() domain.Task {
	status, known := domain.ParseTaskStatus(t.Status)
	if !known {
		logger.Debug("Unknown task status %q for %s, treating as %s", t.Status, t.TaskID, status)
	}

	task := domain.Task{
		Handle:          t.TaskID,
		Status:          status,
		Result:          t.Result,
		RelatedDocument: t.RelatedDocument.value,
	}
	if t.TaskFileName != nil {
		task.FileName = *t.TaskFileName
	}
	return task
}

type bulkEditRequest struct {
	Documents  []int          `json:"documents"`
	Method     string         `json:"method"`
	Parameters map[string]any `json:"parameters"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
