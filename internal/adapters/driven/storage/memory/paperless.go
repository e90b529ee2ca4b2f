package memory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
)

// Ensure Paperless implements the interface.
var _ driven.PaperlessAPI = (*Paperless)(nil)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 25

// TaskStep is one scripted answer to a GetTask call.
// When Err is set the poll fails with it instead of returning a task.
type TaskStep struct {
	Status          domain.TaskStatus
	Result          string
	RelatedDocument *int
	Err             error
}

// Call records one API call made against the fake.
type Call struct {
	Method string
	Args   []any
}

// Paperless is an in-memory document-management server for testing.
//
// Correspondent document counts are derived from the stored documents, task
// statuses follow scripts, and every call is recorded so tests can assert
// which reads and writes happened.
type Paperless struct {
	mu sync.Mutex

	// PageSize controls pagination of listings.
	PageSize int

	correspondents map[int]string
	documents      []domain.Document
	nextDocID      int

	tasks       map[string][]TaskStep
	taskFiles   map[string]string
	nextScripts [][]TaskStep

	failures map[string][]error
	calls    []Call
}

// NewPaperless creates an empty in-memory server.
func NewPaperless() *Paperless {
	return &Paperless{
		PageSize:       DefaultPageSize,
		correspondents: make(map[int]string),
		nextDocID:      1,
		tasks:          make(map[string][]TaskStep),
		taskFiles:      make(map[string]string),
		failures:       make(map[string][]error),
	}
}

// AddCorrespondent stores a correspondent.
func (p *Paperless) AddCorrespondent(id int, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.correspondents[id] = name
}

// AddDocument stores a document. correspondentID 0 means none.
func (p *Paperless) AddDocument(id int, title string, correspondentID int, tags ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := domain.Document{ID: id, Title: title, Tags: tags}
	if correspondentID != 0 {
		c := correspondentID
		doc.CorrespondentID = &c
	}
	p.documents = append(p.documents, doc)
	slices.SortFunc(p.documents, func(a, b domain.Document) int { return a.ID - b.ID })
	if id >= p.nextDocID {
		p.nextDocID = id + 1
	}
}

// Document returns a stored document snapshot.
func (p *Paperless) Document(id int) (domain.Document, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, d := range p.documents {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Document{}, false
}

// SetTask scripts the statuses GetTask returns for handle, one per poll.
// The last step repeats once the script is exhausted.
func (p *Paperless) SetTask(handle, fileName string, steps ...TaskStep) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tasks[handle] = steps
	p.taskFiles[handle] = fileName
}

// QueueUploadScript sets the task script for the next UploadDocument call.
// Without a queued script uploads go PENDING then SUCCESS.
func (p *Paperless) QueueUploadScript(steps ...TaskStep) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextScripts = append(p.nextScripts, steps)
}

// FailNext makes the next call to method fail with err.
// Several calls queue several failures.
func (p *Paperless) FailNext(method string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[method] = append(p.failures[method], err)
}

// Calls returns every recorded call.
func (p *Paperless) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}

// CallCount returns how many times method was called.
func (p *Paperless) CallCount(method string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// record logs the call and pops an injected failure (caller must hold lock).
func (p *Paperless) record(method string, args ...any) error {
	p.calls = append(p.calls, Call{Method: method, Args: args})

	queue := p.failures[method]
	if len(queue) == 0 {
		return nil
	}
	p.failures[method] = queue[1:]
	return queue[0]
}

// correspondent builds a snapshot with a live document count (caller must hold lock).
func (p *Paperless) correspondent(id int) domain.Correspondent {
	c := domain.Correspondent{ID: id, Name: p.correspondents[id]}
	for _, d := range p.documents {
		if d.HasCorrespondent(id) {
			c.DocumentCount++
		}
	}
	return c
}

func paginate[T any](items []T, page, size int) (*driven.Page[T], error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrInvalidInput)
	}

	start := (page - 1) * size
	if start > len(items) || (start == len(items) && start > 0) {
		return nil, fmt.Errorf("page %d: %w", page, domain.ErrNotFound)
	}
	end := min(start+size, len(items))

	result := &driven.Page[T]{Items: slices.Clone(items[start:end]), Count: len(items)}
	if end < len(items) {
		result.Next = page + 1
	}
	return result, nil
}

// ListCorrespondents implements driven.CorrespondentAPI.
func (p *Paperless) ListCorrespondents(
	_ context.Context, q driven.CorrespondentQuery,
) (*driven.Page[domain.Correspondent], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("ListCorrespondents", q.NameContains, q.Page); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(p.correspondents))
	for id, name := range p.correspondents {
		if q.NameContains == "" || strings.Contains(strings.ToLower(name), strings.ToLower(q.NameContains)) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	matches := make([]domain.Correspondent, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, p.correspondent(id))
	}
	return paginate(matches, q.Page, p.PageSize)
}

// GetCorrespondent implements driven.CorrespondentAPI.
func (p *Paperless) GetCorrespondent(_ context.Context, id int) (*domain.Correspondent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GetCorrespondent", id); err != nil {
		return nil, err
	}

	if _, ok := p.correspondents[id]; !ok {
		return nil, fmt.Errorf("correspondent %d: %w", id, domain.ErrNotFound)
	}
	c := p.correspondent(id)
	return &c, nil
}

// DeleteCorrespondent implements driven.CorrespondentAPI.
// Documents that referred to it are left without a correspondent.
func (p *Paperless) DeleteCorrespondent(_ context.Context, id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteCorrespondent", id); err != nil {
		return err
	}

	if _, ok := p.correspondents[id]; !ok {
		return fmt.Errorf("correspondent %d: %w", id, domain.ErrNotFound)
	}
	delete(p.correspondents, id)
	for i := range p.documents {
		if p.documents[i].HasCorrespondent(id) {
			p.documents[i].CorrespondentID = nil
		}
	}
	return nil
}

// ListDocuments implements driven.DocumentAPI.
func (p *Paperless) ListDocuments(_ context.Context, q driven.DocumentQuery) (*driven.Page[domain.Document], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var filter any
	if q.CorrespondentID != nil {
		filter = *q.CorrespondentID
	}
	if err := p.record("ListDocuments", filter, q.IDsOnly, q.Page); err != nil {
		return nil, err
	}

	var matches []domain.Document
	for _, d := range p.documents {
		if q.CorrespondentID != nil && !d.HasCorrespondent(*q.CorrespondentID) {
			continue
		}
		if q.IDsOnly {
			d = domain.Document{ID: d.ID}
		}
		matches = append(matches, d)
	}
	return paginate(matches, q.Page, p.PageSize)
}

// BulkSetCorrespondent implements driven.DocumentAPI.
func (p *Paperless) BulkSetCorrespondent(_ context.Context, documentIDs []int, correspondentID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("BulkSetCorrespondent", slices.Clone(documentIDs), correspondentID); err != nil {
		return err
	}

	if _, ok := p.correspondents[correspondentID]; !ok {
		return fmt.Errorf("correspondent %d: %w", correspondentID, domain.ErrNotFound)
	}
	for i := range p.documents {
		if slices.Contains(documentIDs, p.documents[i].ID) {
			c := correspondentID
			p.documents[i].CorrespondentID = &c
		}
	}
	return nil
}

// UploadDocument implements driven.DocumentAPI. The file must exist; a
// document titled after it is created and linked from the task's success.
func (p *Paperless) UploadDocument(_ context.Context, path string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("UploadDocument", path); err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%s: %w", path, domain.ErrFileNotFound)
	}

	handle := uuid.NewString()
	name := filepath.Base(path)

	var steps []TaskStep
	if len(p.nextScripts) > 0 {
		steps, p.nextScripts = p.nextScripts[0], p.nextScripts[1:]
	} else {
		id := p.nextDocID
		p.nextDocID++
		p.documents = append(p.documents, domain.Document{
			ID:    id,
			Title: strings.TrimSuffix(name, filepath.Ext(name)),
		})
		steps = []TaskStep{
			{Status: domain.TaskPending},
			{
				Status:          domain.TaskSuccess,
				Result:          fmt.Sprintf("Success. New document id %d created", id),
				RelatedDocument: &id,
			},
		}
	}

	p.tasks[handle] = steps
	p.taskFiles[handle] = name
	return handle, nil
}

// GetTask implements driven.TaskAPI.
func (p *Paperless) GetTask(_ context.Context, handle string) (*domain.Task, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GetTask", handle); err != nil {
		return nil, err
	}

	steps, ok := p.tasks[handle]
	if !ok || len(steps) == 0 {
		return nil, fmt.Errorf("task %s: %w", handle, domain.ErrNotFound)
	}

	step := steps[0]
	if len(steps) > 1 {
		p.tasks[handle] = steps[1:]
	}
	if step.Err != nil {
		return nil, step.Err
	}

	task := &domain.Task{
		Handle:          handle,
		FileName:        p.taskFiles[handle],
		Status:          step.Status,
		RelatedDocument: step.RelatedDocument,
	}
	if step.Result != "" {
		r := step.Result
		task.Result = &r
	}
	return task, nil
}
