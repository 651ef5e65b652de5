package run

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-pricer/src/engine"
	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/pricing"
	"github.com/jiaming2012/option-pricer/src/utils"
)

type RunArgs struct {
	GoEnv      string
	Spot       float64
	Strike     float64
	Expiry     float64
	Rate       float64
	Vol        float64
	Dividend   float64
	OptionType string
	NumPaths   int
	Seed       uint64
	Pathwise   bool
}

func Run(ctx context.Context, args RunArgs) error {
	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		return fmt.Errorf("Run: failed to init environment variables: %w", err)
	}

	contract := models.OptionContract{
		Spot:          args.Spot,
		Strike:        args.Strike,
		TimeToExpiry:  args.Expiry,
		RiskFreeRate:  args.Rate,
		Volatility:    args.Vol,
		DividendYield: args.Dividend,
		OptionType:    models.OptionType(args.OptionType),
	}

	if err := contract.Validate(); err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	cfg := engine.DefaultConfig()

	cfg, err := cfg.ApplyEnvOverrides()
	if err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	if args.NumPaths > 0 {
		cfg.NumPaths = args.NumPaths
	}
	if args.Seed > 0 {
		cfg.Seed = args.Seed
	}
	if args.Pathwise {
		cfg.GreeksMethod = engine.Pathwise
	}

	e := engine.NewEngine(cfg)
	payoff := models.EuropeanPayoff{Strike: contract.Strike, OptionType: contract.OptionType}

	log.WithFields(log.Fields{
		"method":    cfg.GreeksMethod,
		"num_paths": cfg.NumPaths,
	}).Info("estimating greeks")

	estimated, err := e.Greeks(ctx, contract, payoff)
	if err != nil {
		return fmt.Errorf("Run: failed to estimate greeks: %w", err)
	}

	analytic := pricing.Greeks(contract)

	fmt.Print(renderTable(estimated, analytic))

	return nil
}

func renderTable(estimated, analytic models.Greeks) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")
	table.SetHeader([]string{"greek", "monte carlo", "analytic", "diff"})

	rows := []struct {
		name      string
		estimated float64
		analytic  float64
	}{
		{"delta", estimated.Delta, analytic.Delta},
		{"gamma", estimated.Gamma, analytic.Gamma},
		{"vega", estimated.Vega, analytic.Vega},
		{"theta", estimated.Theta, analytic.Theta},
		{"rho", estimated.Rho, analytic.Rho},
	}

	for _, row := range rows {
		table.Append([]string{
			row.name,
			fmt.Sprintf("%.4f", row.estimated),
			fmt.Sprintf("%.4f", row.analytic),
			fmt.Sprintf("%+.4f", row.estimated-row.analytic),
		})
	}

	table.Render()

	return display.String()
}

func init() {
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}
}
