package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-pricer/src/cmd/risk_report/run"
)

var rootCmd = &cobra.Command{
	Use:   "risk_report",
	Short: "Computes Monte Carlo VaR and Expected Shortfall for an underlying position",
	Long: `This program simulates risk-neutral price paths of an underlying over a holding horizon and summarizes the tail of the return distribution:
1.) Simulate terminal returns under geometric Brownian motion (optionally Merton jump diffusion)
2.) Value at Risk is the loss quantile at the requested confidence level
3.) Expected Shortfall is the average loss beyond the VaR
	`,
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		spot, err := cmd.Flags().GetFloat64("spot")
		if err != nil {
			log.Fatalf("error getting spot flag: %v", err)
		}

		drift, err := cmd.Flags().GetFloat64("drift")
		if err != nil {
			log.Fatalf("error getting drift flag: %v", err)
		}

		vol, err := cmd.Flags().GetFloat64("vol")
		if err != nil {
			log.Fatalf("error getting vol flag: %v", err)
		}

		horizon, err := cmd.Flags().GetFloat64("horizon")
		if err != nil {
			log.Fatalf("error getting horizon flag: %v", err)
		}

		confidence, err := cmd.Flags().GetFloat64("confidence")
		if err != nil {
			log.Fatalf("error getting confidence flag: %v", err)
		}

		paths, err := cmd.Flags().GetInt("paths")
		if err != nil {
			log.Fatalf("error getting paths flag: %v", err)
		}

		steps, err := cmd.Flags().GetInt("steps")
		if err != nil {
			log.Fatalf("error getting steps flag: %v", err)
		}

		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			log.Fatalf("error getting seed flag: %v", err)
		}

		jumpIntensity, err := cmd.Flags().GetFloat64("jump-intensity")
		if err != nil {
			log.Fatalf("error getting jump-intensity flag: %v", err)
		}

		jumpMean, err := cmd.Flags().GetFloat64("jump-mean")
		if err != nil {
			log.Fatalf("error getting jump-mean flag: %v", err)
		}

		jumpVol, err := cmd.Flags().GetFloat64("jump-vol")
		if err != nil {
			log.Fatalf("error getting jump-vol flag: %v", err)
		}

		if err := run.Run(context.Background(), run.RunArgs{
			GoEnv:         goEnv,
			Spot:          spot,
			Drift:         drift,
			Vol:           vol,
			Horizon:       horizon,
			Confidence:    confidence,
			NumPaths:      paths,
			NumSteps:      steps,
			Seed:          seed,
			JumpIntensity: jumpIntensity,
			JumpMean:      jumpMean,
			JumpVol:       jumpVol,
		}); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().Float64P("spot", "s", 0, "Current price of the underlying, e.g. 100.0. This flag is required.")
	rootCmd.PersistentFlags().Float64("drift", 0.05, "Annualized drift of the underlying, e.g. 0.05 for 5%.")
	rootCmd.PersistentFlags().Float64P("vol", "v", 0, "Annualized volatility of the underlying, e.g. 0.2 for 20%. This flag is required.")
	rootCmd.PersistentFlags().Float64P("horizon", "t", 10.0/252.0, "Holding horizon in years. Defaults to ten trading days.")
	rootCmd.PersistentFlags().Float64P("confidence", "c", 0.95, "Confidence level for VaR and Expected Shortfall, e.g. 0.95 or 0.99.")
	rootCmd.PersistentFlags().Int("paths", 0, "Number of Monte Carlo paths. Defaults to 10,000.")
	rootCmd.PersistentFlags().Int("steps", 0, "Number of time steps per path. Defaults to 252.")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for reproducible runs. Defaults to 42.")
	rootCmd.PersistentFlags().Float64("jump-intensity", 0, "Merton jump intensity per year. 0 keeps plain GBM dynamics.")
	rootCmd.PersistentFlags().Float64("jump-mean", 0, "Mean log jump size for Merton dynamics.")
	rootCmd.PersistentFlags().Float64("jump-vol", 0, "Log jump size volatility for Merton dynamics.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.MarkPersistentFlagRequired("spot")
	rootCmd.MarkPersistentFlagRequired("vol")

	cobra.CheckErr(rootCmd.Execute())
}
