package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg bundles the CLI's bound viper instance with the flag values every
// subcommand reads from it. Grounded on the teacher pack's inmap CLI,
// which threads a single config value through PersistentPreRunE rather
// than reading package-level globals from each subcommand.
type cfg struct {
	v *viper.Viper

	configFile string
	sacRate    float64
	reserve    float64
	imperial   bool
}

func newRootCmd() (*cobra.Command, *cfg) {
	c := &cfg{v: viper.New()}

	root := &cobra.Command{
		Use:   "divecalc",
		Short: "Command-line front end for the decompression-planning engine",
		Long: `divecalc is a demonstration command-line client of the engine
packages (schedule, gasplan, models, repetitive). It reads dive
parameters from a TOML file and prints the resulting profile.

Every flag can also be set as an environment variable prefixed
DIVECALC_, e.g. DIVECALC_SAC_RATE=18 overrides --sac-rate.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindConfig(cmd, c)
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "path to a TOML dive-parameters file")
	root.PersistentFlags().Float64Var(&c.sacRate, "sac-rate", 20.0, "surface air consumption rate in litres/minute")
	root.PersistentFlags().Float64Var(&c.reserve, "reserve", 50.0, "reserve cylinder pressure floor in bar")
	root.PersistentFlags().BoolVar(&c.imperial, "imperial", false, "print depths in feet and pressures in psi")

	root.AddCommand(newProfileCmd(c))
	root.AddCommand(newCompareCmd(c))

	return root, c
}

// bindConfig wires viper to the command's flags and to DIVECALC_-prefixed
// environment variables, then copies any resolved values back onto cfg
// so subcommands can keep reading plain struct fields.
func bindConfig(cmd *cobra.Command, c *cfg) error {
	c.v.SetEnvPrefix("DIVECALC")
	c.v.AutomaticEnv()

	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := c.v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return err
	}

	if c.v.IsSet("sac-rate") {
		c.sacRate = c.v.GetFloat64("sac-rate")
	}
	if c.v.IsSet("reserve") {
		c.reserve = c.v.GetFloat64("reserve")
	}
	if c.v.IsSet("config") {
		c.configFile = c.v.GetString("config")
	}
	if c.v.IsSet("imperial") {
		c.imperial = c.v.GetBool("imperial")
	}
	return nil
}

func main() {
	root, _ := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
