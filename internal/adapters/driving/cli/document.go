package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

var listDocumentsCmd = &cobra.Command{
	Use:   "list-documents",
	Short: "List documents, optionally for one correspondent",
	Args:  cobra.NoArgs,
	RunE:  runListDocuments,
}

var listDocumentIDsCmd = &cobra.Command{
	Use:   "list-document-ids",
	Short: "List document IDs, optionally for one correspondent",
	Args:  cobra.NoArgs,
	RunE:  runListDocumentIDs,
}

// documentCorrespondent filters listings by correspondent name.
var documentCorrespondent string

func init() {
	for _, c := range []*cobra.Command{listDocumentsCmd, listDocumentIDsCmd} {
		c.Flags().StringVarP(&documentCorrespondent, "correspondent", "c", "", "Filter by correspondent name")
		rootCmd.AddCommand(c)
	}
}

// documentFilter resolves the --correspondent flag, if set.
func documentFilter(ctx context.Context, svc *Services) (*domain.Correspondent, error) {
	if documentCorrespondent == "" {
		return nil, nil
	}

	logger.Debug("Looking up correspondent by name: %s", documentCorrespondent)
	c, err := svc.Correspondents.ResolveByName(ctx, documentCorrespondent)
	if err != nil {
		return nil, fmt.Errorf("resolve correspondent: %w", err)
	}
	logger.Debug("Got correspondent: %s", c)
	return c, nil
}

func runListDocuments(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	filter, err := documentFilter(ctx, svc)
	if err != nil {
		return err
	}

	var views []documentView
	for doc, err := range svc.Documents.Documents(ctx, filter) {
		if err != nil {
			return err
		}
		if structured() {
			views = append(views, newDocumentView(doc))
			continue
		}
		cmd.Printf("%d: %s %s\n", doc.ID, doc.Title, formatTags(doc.Tags))
	}

	if structured() {
		if views == nil {
			views = []documentView{}
		}
		return encode(cmd.OutOrStdout(), views)
	}
	return nil
}

func runListDocumentIDs(cmd *cobra.Command, _ []string) error {
	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	filter, err := documentFilter(ctx, svc)
	if err != nil {
		return err
	}

	ids := []int{}
	for id, err := range svc.Documents.DocumentIDs(ctx, filter) {
		if err != nil {
			return err
		}
		if structured() {
			ids = append(ids, id)
			continue
		}
		cmd.Printf("%d\n", id)
	}

	if structured() {
		return encode(cmd.OutOrStdout(), ids)
	}
	return nil
}
