package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Shows the resolved settings. Use "config set" to change one.

Keys:
  engine.backend   embedded or native
  index.path       index directory
  index.stemmer    stemming language (see "xapctl languages"), or none
  index.workers    concurrent file reads while indexing
  search.limit     default number of search results`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := getServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Title.Render("Current Settings"))
	cmd.Printf("  engine.backend  %s %s\n", settings.Backend, st.Muted.Render("("+settings.Backend.Description()+")"))
	cmd.Printf("  index.path      %s\n", settings.IndexPath)
	cmd.Printf("  index.stemmer   %s\n", settings.Stemmer.LanguageID())
	cmd.Printf("  index.workers   %d\n", settings.Workers)
	cmd.Printf("  search.limit    %d\n", settings.SearchLimit)

	if s.EngineErr != nil {
		cmd.Printf("  engine          %s\n", st.Error.Render(s.EngineErr.Error()))
	} else if s.EngineName != "" {
		cmd.Printf("  engine          %s\n", s.EngineName)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := getServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := s.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}
