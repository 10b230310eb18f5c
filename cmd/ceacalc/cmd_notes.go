package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// notesCmd renders the methodology notes
var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Show the assumptions and interpretation notes",
	RunE:  runNotes,
}

const methodologyNotes = `# Key assumptions to remember

- **Perspective:** These calculations take a *program/implementer*
  perspective. To move toward a *societal* perspective, add opportunity
  costs such as participant time and volunteer labor.
- **Inflation:** Real costs are computed as
  ` + "`Real cost = Nominal cost x (CPI_target_year / CPI_cost_year)`" + `.
  CPI is an index (e.g. 2018 = 100, 2024 = 140); only the *ratio* of the
  indices matters.
- **Uncertainty:** Prospective CEA (before a pilot) uses assumed costs and
  impacts from other contexts. Retrospective CEA (after an RCT) uses
  observed costs and impacts, but may not generalize to scale or to new
  regions. Neither directly predicts scale-up performance.
- **Thresholds:** An SD-per-$100 threshold is a policy choice, not a
  universal rule. It should reflect your budget constraints and priorities.
- **Sensitivity analysis:** The sweep applies simple +/- percentages around
  costs and impacts. This is not a formal confidence interval; it shows how
  fragile or robust your CE estimate is to plausible changes. If even the
  worst case clears the threshold, the program is robustly cost-effective;
  if only the best case does, the result depends on optimistic assumptions.
- **Scale-up:** At larger scale, costs per child may fall (economies of
  scale) or rise (logistics, weaker supervision), and impacts may change.
  Treat pilot CEAs as a starting point, not a guarantee.
- **Safe language:** Prefer *"If our assumptions hold, the program is
  estimated to cost around $X per SD gained"* over *"The program will cost
  $X per SD gained everywhere."*
`

func runNotes(cmd *cobra.Command, args []string) error {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(cfg.Display.WordWrap),
	}
	if cfg.Display.NoColor {
		opts = append(opts, glamour.WithStylePath("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		// Plain fallback: the notes still matter without a renderer.
		fmt.Fprint(cmd.OutOrStdout(), methodologyNotes)
		return nil
	}

	rendered, err := renderer.Render(methodologyNotes)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), methodologyNotes)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
