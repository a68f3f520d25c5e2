package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

var indexWatch bool

var indexCmd = &cobra.Command{
	Use:   "index [paths...]",
	Short: "Index files and directories",
	Long: `Indexes every readable text file below the given paths (default: the
current directory). Files already in the index are replaced. Hidden files
and directories are skipped.

With --watch, xapctl keeps running after the initial pass and applies
changes below the single given directory until interrupted.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexWatch, "watch", "w", false, "keep the index in sync with the directory")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if indexWatch && len(paths) != 1 {
		return fmt.Errorf("--watch takes exactly one directory, got %d paths", len(paths))
	}

	s, err := engineServices()
	if err != nil {
		return err
	}
	if s.Index == nil {
		return fmt.Errorf("index service: %w", errNotConfigured)
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := s.Index.IndexFiles(ctx, paths)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	printIndexReport(cmd, report)

	if !indexWatch {
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", st.Path.Render(paths[0]))
	return s.Index.Watch(ctx, paths[0], func(change domain.FileChange, err error) {
		if err != nil {
			cmd.Printf("%s %s: %v\n", st.Error.Render("error"), change.Path, err)
			return
		}
		cmd.Printf("%s %s\n", st.Success.Render(change.Type.String()), change.Path)
	})
}

func printIndexReport(cmd *cobra.Command, report *domain.IndexReport) {
	st := newStyles(cmd.OutOrStdout())

	cmd.Printf("%s %d files, skipped %d, %d documents in index\n",
		st.Success.Render("Indexed"), report.Indexed, len(report.Skipped), report.DocCount)

	skipped := make([]string, 0, len(report.Skipped))
	for path := range report.Skipped {
		skipped = append(skipped, path)
	}
	slices.Sort(skipped)
	for _, path := range skipped {
		cmd.Printf("  %s %s: %s\n", st.Warning.Render("skipped"), path, st.Muted.Render(report.Skipped[path]))
	}
}

// cmdContext returns the command's context, or Background when run
// without one (as in tests calling RunE directly).
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
