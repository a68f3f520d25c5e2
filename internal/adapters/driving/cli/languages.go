package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the stemming languages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		st := newStyles(cmd.OutOrStdout())
		for _, s := range domain.Stemmers() {
			cmd.Printf("%-16s %s\n", s.LanguageID(), st.Muted.Render(s.String()))
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
