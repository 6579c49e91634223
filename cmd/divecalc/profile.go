package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/subsurfacelabs/decoengine/gasmix"
	"github.com/subsurfacelabs/decoengine/gasplan"
	"github.com/subsurfacelabs/decoengine/helpers"
	"github.com/subsurfacelabs/decoengine/schedule"
)

func newProfileCmd(c *cfg) *cobra.Command {
	var cylinderVolume, cylinderPressure float64

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Compute a decompression profile from a TOML dive-parameters file and print it as a DSR table",
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

			profile, err := schedule.ComputeProfile(params)
			if err != nil {
				return fmt.Errorf("computing profile: %w", err)
			}

			printDSRTable(cmd, profile, c.imperial)

			if cylinderVolume > 0 {
				cylinders := []gasplan.Cylinder{{
					Name:          "primary",
					Volume:        cylinderVolume,
					StartPressure: cylinderPressure,
					Role:          gasmix.RoleBottom,
				}}
				air, err := gasplan.ComputeAirConsumption(profile.Segments, c.sacRate, c.reserve, cylinders)
				if err != nil {
					return fmt.Errorf("computing air consumption: %w", err)
				}
				printAirConsumption(cmd, air, c.imperial)
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&cylinderVolume, "cylinder-volume", 0, "primary cylinder water volume in litres; set to also print gas consumption")
	cmd.Flags().Float64Var(&cylinderPressure, "cylinder-pressure", 200.0, "primary cylinder starting pressure in bar")

	return cmd
}

// printDSRTable prints depth/stop-time/runtime rows in the spirit of the
// teacher's DivePlan.DSRTable() method, adapted from a fixed-stop
// ladder to this engine's computed DecompressionStop list. When
// imperial is set, depths are converted to feet via helpers.MetresToFeet.
func printDSRTable(cmd *cobra.Command, profile schedule.DiveProfile, imperial bool) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	defer w.Flush()

	depthUnit, depth := "m", profile.MaxDepth
	if imperial {
		depthUnit, depth = "ft", helpers.MetresToFeet(profile.MaxDepth)
	}

	fmt.Fprintf(w, "Model:\t%s\n", profile.ModelLabel)
	fmt.Fprintf(w, "Max depth:\t%.1f %s\n", depth, depthUnit)
	fmt.Fprintf(w, "No-decompression limit:\t%.1f min\n", profile.NoDecompressionLimit)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "DEPTH (%s)\tSTOP TIME (min)\tRUNTIME (min)\tGAS\n", depthUnit)
	for _, stop := range profile.DecompressionStops {
		stopDepth := stop.Depth
		if imperial {
			stopDepth = helpers.MetresToFeet(stopDepth)
		}
		fmt.Fprintf(w, "%.0f\t%.1f\t%.1f\t%s\n", stopDepth, stop.Duration, stop.Runtime, stop.GasMix.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total dive time:\t%.1f min\n", profile.TotalDiveTime)
	fmt.Fprintf(w, "Total decompression time:\t%.1f min\n", profile.TotalDecompressionTime)

	for _, warn := range profile.Warnings {
		fmt.Fprintf(w, "%s:\t%s\n", warn.Level, warn.Message)
	}
}

// printAirConsumption prints per-cylinder pressures. When imperial is
// set, bar is converted to psi via helpers.BarToPSI.
func printAirConsumption(cmd *cobra.Command, result gasplan.AirConsumptionResult, imperial bool) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	defer w.Flush()

	pressureUnit := "bar"
	convert := func(bar float64) float64 { return bar }
	if imperial {
		pressureUnit = "psi"
		convert = helpers.BarToPSI
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "CYLINDER\tSTART (%s)\tFINAL (%s)\tUSED (%%)\tBELOW RESERVE\n", pressureUnit, pressureUnit)
	for _, cyl := range result.Cylinders {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.1f\t%v\n", cyl.Name, convert(cyl.StartPressure), convert(cyl.FinalPressure), cyl.PercentUsed, cyl.BelowReserve)
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "warning:\t%s\n", warn)
	}
}
