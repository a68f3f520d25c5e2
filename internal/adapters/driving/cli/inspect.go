package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <docid>",
	Short: "Show a stored document",
	Long:  `Prints the data, values and terms (with positions) of a stored document.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		return fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, args[0])
	}

	s, err := engineServices()
	if err != nil {
		return err
	}
	if s.Inspect == nil {
		return fmt.Errorf("inspect service: %w", errNotConfigured)
	}

	details, err := s.Inspect.Inspect(cmdContext(cmd), domain.DocumentID(id))
	if err != nil {
		return err
	}

	if inspectJSON {
		return outputInspectJSON(cmd, details)
	}
	outputInspect(cmd, details)
	return nil
}

type termJSON struct {
	Name      string            `json:"name"`
	Wdf       uint32            `json:"wdf"`
	Positions []domain.Position `json:"positions"`
}

type documentJSON struct {
	ID     uint32            `json:"docid"`
	Data   string            `json:"data"`
	Values map[string]string `json:"values"`
	Terms  []termJSON        `json:"terms"`
}

func outputInspectJSON(cmd *cobra.Command, d *domain.DocumentDetails) error {
	out := documentJSON{
		ID:     uint32(d.ID),
		Data:   string(d.Data),
		Values: make(map[string]string, len(d.Values)),
		Terms:  make([]termJSON, 0, len(d.Terms)),
	}
	for slot, v := range d.Values {
		out.Values[strconv.FormatUint(uint64(slot), 10)] = string(v)
	}
	for _, t := range d.Terms {
		out.Terms = append(out.Terms, termJSON{Name: t.Name, Wdf: t.Wdf, Positions: t.Positions})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputInspect(cmd *cobra.Command, d *domain.DocumentDetails) {
	st := newStyles(cmd.OutOrStdout())

	cmd.Println(st.Title.Render(fmt.Sprintf("Document %d", d.ID)))
	cmd.Printf("  data: %q\n", d.Data)

	cmd.Println(st.Title.Render("Values"))
	slots := make([]domain.ValueNumber, 0, len(d.Values))
	for slot := range d.Values {
		slots = append(slots, slot)
	}
	slices.Sort(slots)
	for _, slot := range slots {
		cmd.Printf("  %d: %q\n", slot, d.Values[slot])
	}

	cmd.Println(st.Title.Render(fmt.Sprintf("Terms (%d)", len(d.Terms))))
	for _, t := range d.Terms {
		cmd.Printf("  %s %s %v\n", t.Name, st.Muted.Render(fmt.Sprintf("wdf=%d", t.Wdf)), t.Positions)
	}
}
