package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-pricer/src/cmd/compute_greeks/run"
)

var rootCmd = &cobra.Command{
	Use:   "compute_greeks",
	Short: "Estimates option sensitivities by Monte Carlo and compares them to the closed form",
	Long: `This program estimates the Greeks of a European option contract:
1.) Delta and gamma from central finite differences in the spot, re-using the same random numbers on both legs
2.) Vega from a one-point volatility bump, theta from one day of decay, rho from a 10bp rate bump
3.) Optionally, pathwise delta and vega computed directly from the simulated terminal prices
4.) Closed-form Black-Scholes Greeks printed alongside for comparison
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

		strike, err := cmd.Flags().GetFloat64("strike")
		if err != nil {
			log.Fatalf("error getting strike flag: %v", err)
		}

		expiry, err := cmd.Flags().GetFloat64("expiry")
		if err != nil {
			log.Fatalf("error getting expiry flag: %v", err)
		}

		rate, err := cmd.Flags().GetFloat64("rate")
		if err != nil {
			log.Fatalf("error getting rate flag: %v", err)
		}

		vol, err := cmd.Flags().GetFloat64("vol")
		if err != nil {
			log.Fatalf("error getting vol flag: %v", err)
		}

		dividend, err := cmd.Flags().GetFloat64("dividend")
		if err != nil {
			log.Fatalf("error getting dividend flag: %v", err)
		}

		optionType, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("error getting type flag: %v", err)
		}

		paths, err := cmd.Flags().GetInt("paths")
		if err != nil {
			log.Fatalf("error getting paths flag: %v", err)
		}

		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			log.Fatalf("error getting seed flag: %v", err)
		}

		pathwise, err := cmd.Flags().GetBool("pathwise")
		if err != nil {
			log.Fatalf("error getting pathwise flag: %v", err)
		}

		if err := run.Run(context.Background(), run.RunArgs{
			GoEnv:      goEnv,
			Spot:       spot,
			Strike:     strike,
			Expiry:     expiry,
			Rate:       rate,
			Vol:        vol,
			Dividend:   dividend,
			OptionType: optionType,
			NumPaths:   paths,
			Seed:       seed,
			Pathwise:   pathwise,
		}); err != nil {
			log.Fatalf("error running command: %v", err)
		}
	},
}

func main() {
	rootCmd.PersistentFlags().Float64P("spot", "s", 0, "Current price of the underlying, e.g. 100.0. This flag is required.")
	rootCmd.PersistentFlags().Float64P("strike", "k", 0, "Strike price of the contract, e.g. 105.0. This flag is required.")
	rootCmd.PersistentFlags().Float64P("expiry", "t", 0, "Time to expiry in years, e.g. 1.0 or 0.25. This flag is required.")
	rootCmd.PersistentFlags().Float64P("rate", "r", 0.05, "Annualized risk-free rate, e.g. 0.05 for 5%.")
	rootCmd.PersistentFlags().Float64P("vol", "v", 0, "Annualized volatility of the underlying, e.g. 0.2 for 20%. This flag is required.")
	rootCmd.PersistentFlags().Float64P("dividend", "q", 0, "Continuous dividend yield, e.g. 0.02 for 2%.")
	rootCmd.PersistentFlags().String("type", "call", "Option type: 'call' or 'put'.")
	rootCmd.PersistentFlags().Int("paths", 0, "Number of Monte Carlo paths per run. Defaults to 10,000.")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for reproducible runs. Defaults to 42.")
	rootCmd.PersistentFlags().Bool("pathwise", false, "Use pathwise estimators for delta and vega instead of finite differences.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.MarkPersistentFlagRequired("spot")
	rootCmd.MarkPersistentFlagRequired("strike")
	rootCmd.MarkPersistentFlagRequired("expiry")
	rootCmd.MarkPersistentFlagRequired("vol")

	cobra.CheckErr(rootCmd.Execute())
}
