package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

var (
	searchOp    string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [words...]",
	Short: "Search indexed documents",
	Long: `Searches the index for the given words. Each word is stemmed with the
configured stemmer and matched in document bodies and titles. Words are
joined left to right with --op:

  and       documents containing every word (default)
  or        documents containing any word
  and_not   documents matching the first word but not the others
  xor       documents matching an odd number of words
  and_maybe the first word, ranked higher when the others also match
  filter    the first word, restricted to documents matching the others`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchOp, "op", "and", "operator joining the words")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default search.limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	op, err := domain.ParseQueryOp(searchOp)
	if err != nil {
		return err
	}

	s, err := engineServices()
	if err != nil {
		return err
	}
	if s.Search == nil {
		return fmt.Errorf("search service: %w", errNotConfigured)
	}

	results, err := s.Search.Search(cmdContext(cmd), args, op, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

// searchHitJSON is the JSON form of a hit.
type searchHitJSON struct {
	Rank    int     `json:"rank"`
	DocID   uint32  `json:"docid"`
	Weight  float64 `json:"weight"`
	Percent int     `json:"percent"`
	Path    string  `json:"path"`
}

type searchResultsJSON struct {
	Query string          `json:"query"`
	Hits  []searchHitJSON `json:"hits"`
}

func outputSearchJSON(cmd *cobra.Command, results *domain.SearchResults) error {
	out := searchResultsJSON{Query: results.Query, Hits: make([]searchHitJSON, 0, len(results.Hits))}
	for _, hit := range results.Hits {
		out.Hits = append(out.Hits, searchHitJSON{
			Rank:    hit.Rank,
			DocID:   uint32(hit.DocID),
			Weight:  hit.Weight,
			Percent: hit.Percent,
			Path:    hit.Path,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results *domain.SearchResults) {
	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Muted.Render(results.Query))

	if len(results.Hits) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println()
	for _, hit := range results.Hits {
		path := hit.Path
		if path == "" {
			path = hit.Data
		}
		// Format: [N] path (percent%) #docid
		cmd.Printf("  [%d] %s %s %s\n",
			hit.Rank+1,
			st.Path.Render(path),
			st.Score.Render(fmt.Sprintf("(%d%%)", hit.Percent)),
			st.Muted.Render(fmt.Sprintf("#%d", hit.DocID)))
	}
}
