package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

var stemLanguage string

var stemCmd = &cobra.Command{
	Use:   "stem [words...]",
	Short: "Show the stem of each word",
	Long:  `Runs each word through the stemmer for --language (see "xapctl languages").`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStem,
}

func init() {
	stemCmd.Flags().StringVarP(&stemLanguage, "language", "l", "english", "stemming language")
	rootCmd.AddCommand(stemCmd)
}

func runStem(cmd *cobra.Command, args []string) error {
	language, err := domain.ParseStemmer(stemLanguage)
	if err != nil {
		return err
	}

	s, err := engineServices()
	if err != nil {
		return err
	}
	if s.Stem == nil {
		return fmt.Errorf("stem service: %w", errNotConfigured)
	}

	stems, err := s.Stem.Stem(language, args)
	if err != nil {
		return err
	}
	for i, word := range args {
		cmd.Printf("%s\t%s\n", word, stems[i])
	}
	return nil
}
