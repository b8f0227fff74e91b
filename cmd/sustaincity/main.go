package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sustaincity",
		Short: "Sustainable city planning and environmental impact simulator",
	}

	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scoreCmd() *cobra.Command {
	var seasonName string

	cmd := &cobra.Command{
		Use:   "score [layout.json]",
		Short: "Compute environmental metrics for a city layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScore(args[0], seasonName)
		},
	}

	cmd.Flags().StringVarP(&seasonName, "season", "s", "spring", "season to score under (spring, summer, fall, winter)")
	return cmd
}

func simulateCmd() *cobra.Command {
	var years int
	var seed int64
	var speed string

	cmd := &cobra.Command{
		Use:   "simulate [layout.json]",
		Short: "Run the year-by-year simulation over a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSimulate(args[0], years, seed, speed)
		},
	}

	cmd.Flags().IntVarP(&years, "years", "y", 10, "number of years to simulate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")
	cmd.Flags().StringVar(&speed, "speed", "", "pace years in real time: slow, medium, or fast (default runs at once)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [layout.json]",
		Short: "Validate a city layout file without scoring it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate a city layout from a prompt (needs GEMINI_API_KEY)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args)
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the simulation API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(addr, dataDir)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides SUSTAINCITY_ADDR)")
	cmd.Flags().StringVarP(&dataDir, "data-dir", "d", "", "directory for saved cities (overrides SUSTAINCITY_DATA_DIR)")
	return cmd
}
