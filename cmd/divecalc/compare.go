package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/subsurfacelabs/decoengine/models"
)

func newCompareCmd(c *cfg) *cobra.Command {
	var priorDiveCount int

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run a dive through every alternative model and report where they diverge",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configFile == "" {
				return fmt.Errorf("--config is required")
			}
			diveCfg, err := loadDiveConfig(c.configFile)
			if err != nil {
				return fmt.Errorf("reading dive config: %w", err)
			}
			params, err := diveCfg.toDiveParameters()
			if err != nil {
				return fmt.Errorf("building dive parameters: %w", err)
			}

			result, err := models.CompareModels(params, []models.Kind{
				models.Buhlmann, models.VPMBApprox, models.RGBMApprox, models.USNavyApprox,
			}, priorDiveCount)
			if err != nil {
				return fmt.Errorf("comparing models: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "MODEL\tTOTAL DIVE TIME (min)\tTOTAL DECO TIME (min)")
			for _, m := range result.Models {
				fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", m.Label, m.TotalDiveTime, m.TotalDecompressionTime)
			}
			for _, diff := range result.SignificantDifferences {
				fmt.Fprintf(w, "note:\t%s\n", diff)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&priorDiveCount, "prior-dives", 0, "number of dives already made today, feeding RGBM's repetitive-dive penalty")

	return cmd
}
