package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-pricer/src/cmd/price_batch/run"
)

var rootCmd = &cobra.Command{
	Use:   "price_batch",
	Short: "Prices every scenario in a YAML config file",
	Long: `This program loads a list of option scenarios from a YAML file, prices each one by Monte Carlo simulation, and renders a single comparison table against the closed-form Black-Scholes price.
	`,
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		configInPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config flag: %v", err)
		}

		paths, err := cmd.Flags().GetInt("paths")
		if err != nil {
			log.Fatalf("error getting paths flag: %v", err)
		}

		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			log.Fatalf("error getting seed flag: %v", err)
		}

		csvOutDir, err := cmd.Flags().GetString("csv-out-dir")
		if err != nil {
			log.Fatalf("error getting csv-out-dir flag: %v", err)
		}

		if err := run.Run(context.Background(), run.RunArgs{
			GoEnv:        goEnv,
			ConfigInPath: configInPath,
			NumPaths:     paths,
			Seed:         seed,
			CsvOutDir:    csvOutDir,
		}); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML scenario config, e.g. 'scenarios.yaml'. This flag is required.")
	rootCmd.PersistentFlags().Int("paths", 0, "Number of Monte Carlo paths per scenario. Defaults to 10,000.")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for reproducible runs. Defaults to 42.")
	rootCmd.PersistentFlags().String("csv-out-dir", "", "Directory to export the results as CSV. Empty disables export.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.MarkPersistentFlagRequired("config")

	cobra.CheckErr(rootCmd.Execute())
}
