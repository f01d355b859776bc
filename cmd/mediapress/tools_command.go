package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediapress/internal/deps"
)

func newToolsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Show availability of required external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.Tools))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				detail := status.Detail
				if status.Available && detail == "" {
					detail = status.Command
				}
				if !status.Available {
					missing++
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), status.Description, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Available", "Purpose", "Detail"},
				rows,
				nil,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if missing > 0 {
				return fmt.Errorf("%d required tool(s) unavailable", missing)
			}
			return nil
		},
	}
}
