package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	default:
		return false
	}
}

// structured reports whether output goes out as JSON or YAML.
func structured() bool {
	return flagOutput == formatJSON || flagOutput == formatYAML
}

// encode writes v in the selected structured format.
func encode(w io.Writer, v any) error {
	switch flagOutput {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

type correspondentView struct {
	ID            int    `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	DocumentCount int    `json:"document_count" yaml:"document_count"`
}

func newCorrespondentView(c domain.Correspondent) correspondentView {
	return correspondentView{ID: c.ID, Name: c.Name, DocumentCount: c.DocumentCount}
}

type documentView struct {
	ID            int      `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Tags          []string `json:"tags" yaml:"tags"`
	Correspondent *int     `json:"correspondent" yaml:"correspondent"`
}

func newDocumentView(d domain.Document) documentView {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return documentView{ID: d.ID, Title: d.Title, Tags: tags, Correspondent: d.CorrespondentID}
}

func formatTags(tags []string) string {
	return "[" + strings.Join(tags, ", ") + "]"
}

type uploadView struct {
	Path            string `json:"path" yaml:"path"`
	Task            string `json:"task,omitempty" yaml:"task,omitempty"`
	Result          string `json:"result,omitempty" yaml:"result,omitempty"`
	RelatedDocument *int   `json:"related_document,omitempty" yaml:"related_document,omitempty"`
	Skipped         bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error           string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newUploadView(o domain.UploadOutcome) uploadView {
	v := uploadView{Path: o.Path, Task: o.Handle, Skipped: o.Skipped}
	if o.Result != nil {
		v.Result = o.Result.Result
		v.RelatedDocument = o.Result.RelatedDocument
	}
	if o.Err != nil {
		v.Error = o.Err.Error()
	}
	return v
}

type migrationSourceView struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	DocumentIDs []int  `json:"document_ids" yaml:"document_ids"`
	Skipped     bool   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

type migrationView struct {
	Destination correspondentView     `json:"destination" yaml:"destination"`
	DryRun      bool                  `json:"dry_run" yaml:"dry_run"`
	Moved       int                   `json:"moved" yaml:"moved"`
	Sources     []migrationSourceView `json:"sources" yaml:"sources"`
}

func newMigrationView(r *domain.MigrationReport) migrationView {
	v := migrationView{
		Destination: newCorrespondentView(r.Destination),
		DryRun:      r.DryRun,
		Moved:       r.Moved(),
		Sources:     make([]migrationSourceView, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		s := migrationSourceView{ID: o.SourceID, DocumentIDs: o.DocumentIDs, Skipped: o.Skipped}
		if s.DocumentIDs == nil {
			s.DocumentIDs = []int{}
		}
		if o.Source != nil {
			s.Name = o.Source.Name
		}
		if o.Err != nil {
			s.Error = o.Err.Error()
		}
		v.Sources = append(v.Sources, s)
	}
	return v
}

// batchError summarises a batch with failed items. The per-item errors
// have already been reported.
type batchError struct {
	what   string
	failed int
	total  int
	err    error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d %s failed", e.failed, e.total, e.what)
}

func (e *batchError) Unwrap() error {
	return e.err
}
