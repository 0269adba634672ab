package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"customer-support-agent/internal/knowledge"
)

var ingestDir string

var ingestExtensions = map[string]bool{".md": true, ".txt": true}

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load policy documents into the retrieval backend",
		Long: `Split every .md and .txt file under a directory into passages and
store them in the configured retrieval backend. Re-ingesting a file
replaces its passages.

Examples:
  supportctl ingest --dir ./data/policies`,
		Args: cobra.NoArgs,
		RunE: runIngest,
	}

	cmd.Flags().StringVar(&ingestDir, "dir", "data/policies", "Directory of policy documents")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	docs, err := loadDocuments(ingestDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no .md or .txt documents found in %s", ingestDir)
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.Knowledge.Ingest(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingesting: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d passages from %d documents\n", n, len(docs))
	return nil
}

// loadDocuments reads policy files under dir, sorted by path. Sources are
// paths relative to dir.
func loadDocuments(dir string) ([]knowledge.Document, error) {
	var docs []knowledge.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !ingestExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			return nil
		}

		source, err := filepath.Rel(dir, path)
		if err != nil {
			source = path
		}
		docs = append(docs, knowledge.Document{Source: filepath.ToSlash(source), Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })
	return docs, nil
}
