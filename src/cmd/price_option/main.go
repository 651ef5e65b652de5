package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/jiaming2012/option-pricer/src/cmd/price_option/run"
)

var rootCmd = &cobra.Command{
	Use:   "price_option",
	Short: "Prices a single option contract by Monte Carlo simulation",
	Long: `This program prices an option contract by simulating risk-neutral price paths and averaging the discounted payoff:
1.) Simulate paths of the underlying under geometric Brownian motion (optionally Merton jump diffusion)
2.) Evaluate the selected payoff (european, asian, barrier, digital, lookback) on each path
3.) Aggregate into a price estimate with standard error and a 95% confidence interval
4.) Compare against the closed-form Black-Scholes price where one exists
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

		payoffKind, err := cmd.Flags().GetString("payoff")
		if err != nil {
			log.Fatalf("error getting payoff flag: %v", err)
		}

		barrier, err := cmd.Flags().GetFloat64("barrier")
		if err != nil {
			log.Fatalf("error getting barrier flag: %v", err)
		}

		barrierDirection, err := cmd.Flags().GetString("barrier-direction")
		if err != nil {
			log.Fatalf("error getting barrier-direction flag: %v", err)
		}

		knockIn, err := cmd.Flags().GetBool("knock-in")
		if err != nil {
			log.Fatalf("error getting knock-in flag: %v", err)
		}

		cashAmount, err := cmd.Flags().GetFloat64("cash-amount")
		if err != nil {
			log.Fatalf("error getting cash-amount flag: %v", err)
		}

		geometric, err := cmd.Flags().GetBool("geometric")
		if err != nil {
			log.Fatalf("error getting geometric flag: %v", err)
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

		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			log.Fatalf("error getting workers flag: %v", err)
		}

		antithetic, err := cmd.Flags().GetBool("antithetic")
		if err != nil {
			log.Fatalf("error getting antithetic flag: %v", err)
		}

		controlVariate, err := cmd.Flags().GetBool("control-variate")
		if err != nil {
			log.Fatalf("error getting control-variate flag: %v", err)
		}

		targetStdError, err := cmd.Flags().GetFloat64("target-std-error")
		if err != nil {
			log.Fatalf("error getting target-std-error flag: %v", err)
		}

		american, err := cmd.Flags().GetBool("american")
		if err != nil {
			log.Fatalf("error getting american flag: %v", err)
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

		csvOutDir, err := cmd.Flags().GetString("csv-out-dir")
		if err != nil {
			log.Fatalf("error getting csv-out-dir flag: %v", err)
		}

		if err := run.Run(context.Background(), run.RunArgs{
			GoEnv:            goEnv,
			Spot:             spot,
			Strike:           strike,
			Expiry:           expiry,
			Rate:             rate,
			Vol:              vol,
			Dividend:         dividend,
			OptionType:       optionType,
			PayoffKind:       payoffKind,
			Barrier:          barrier,
			BarrierDirection: barrierDirection,
			KnockIn:          knockIn,
			CashAmount:       cashAmount,
			Geometric:        geometric,
			NumPaths:         paths,
			NumSteps:         steps,
			Seed:             seed,
			Workers:          workers,
			Antithetic:       antithetic,
			ControlVariate:   controlVariate,
			TargetStdError:   targetStdError,
			American:         american,
			JumpIntensity:    jumpIntensity,
			JumpMean:         jumpMean,
			JumpVol:          jumpVol,
			CsvOutDir:        csvOutDir,
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
	rootCmd.PersistentFlags().String("payoff", "european", "Payoff to evaluate: 'european', 'asian', 'barrier', 'digital' or 'lookback'.")
	rootCmd.PersistentFlags().Float64("barrier", 0, "Barrier level. Required when payoff is 'barrier'.")
	rootCmd.PersistentFlags().String("barrier-direction", "up", "Barrier direction: 'up' or 'down'.")
	rootCmd.PersistentFlags().Bool("knock-in", false, "Treat the barrier as knock-in rather than knock-out.")
	rootCmd.PersistentFlags().Float64("cash-amount", 1.0, "Cash amount paid by a digital payoff.")
	rootCmd.PersistentFlags().Bool("geometric", false, "Use geometric averaging for the asian payoff.")
	rootCmd.PersistentFlags().Int("paths", 0, "Number of Monte Carlo paths. Defaults to 10,000.")
	rootCmd.PersistentFlags().Int("steps", 0, "Number of time steps per path. Defaults to 252.")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed for reproducible runs. Defaults to 42.")
	rootCmd.PersistentFlags().Int("workers", 0, "Number of simulation workers. Defaults to the number of CPUs.")
	rootCmd.PersistentFlags().Bool("antithetic", false, "Enable antithetic variates.")
	rootCmd.PersistentFlags().Bool("control-variate", false, "Enable the terminal-price control variate.")
	rootCmd.PersistentFlags().Float64("target-std-error", 0, "Stop the run once the standard error drops below this value. 0 disables early stopping.")
	rootCmd.PersistentFlags().Bool("american", false, "Price with early exercise via Longstaff-Schwartz.")
	rootCmd.PersistentFlags().Float64("jump-intensity", 0, "Merton jump intensity per year. 0 keeps plain GBM dynamics.")
	rootCmd.PersistentFlags().Float64("jump-mean", 0, "Mean log jump size for Merton dynamics.")
	rootCmd.PersistentFlags().Float64("jump-vol", 0, "Log jump size volatility for Merton dynamics.")
	rootCmd.PersistentFlags().String("csv-out-dir", "", "Directory to export the result and convergence trace as CSV. Empty disables export.")
	rootCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")

	rootCmd.MarkPersistentFlagRequired("spot")
	rootCmd.MarkPersistentFlagRequired("strike")
	rootCmd.MarkPersistentFlagRequired("expiry")
	rootCmd.MarkPersistentFlagRequired("vol")

	cobra.CheckErr(rootCmd.Execute())
}
