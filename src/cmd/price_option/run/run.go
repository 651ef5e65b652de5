package run

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-pricer/src/engine"
	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/pricing"
	"github.com/jiaming2012/option-pricer/src/simulation"
	"github.com/jiaming2012/option-pricer/src/utils"
)

type RunArgs struct {
	GoEnv            string
	Spot             float64
	Strike           float64
	Expiry           float64
	Rate             float64
	Vol              float64
	Dividend         float64
	OptionType       string
	PayoffKind       string
	Barrier          float64
	BarrierDirection string
	KnockIn          bool
	CashAmount       float64
	Geometric        bool
	NumPaths         int
	NumSteps         int
	Seed             uint64
	Workers          int
	Antithetic       bool
	ControlVariate   bool
	TargetStdError   float64
	American         bool
	JumpIntensity    float64
	JumpMean         float64
	JumpVol          float64
	CsvOutDir        string
}

func Run(ctx context.Context, args RunArgs) error {
	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		return fmt.Errorf("Run: failed to init environment variables: %w", err)
	}

	cfg, err := buildConfig(args)
	if err != nil {
		return fmt.Errorf("Run: %w", err)
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

	e := engine.NewEngine(cfg)

	if args.American {
		return runAmerican(ctx, e, contract)
	}

	payoff, err := BuildPayoff(args, contract)
	if err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	log.WithFields(log.Fields{
		"payoff":    payoff.Description(),
		"num_paths": e.Config().NumPaths,
		"seed":      e.Config().Seed,
	}).Info("pricing contract")

	var result models.PriceResult
	var trace []models.ConvergencePointDTO

	if args.JumpIntensity > 0 {
		model := simulation.NewMertonFromContract(contract, args.JumpIntensity, args.JumpMean, args.JumpVol)
		result, err = e.PriceWithModel(ctx, model, contract, payoff)
	} else {
		result, trace, err = e.PriceDetailed(ctx, contract, payoff)
	}

	if err != nil {
		return fmt.Errorf("Run: pricing failed: %w", err)
	}

	// The closed form only exists for the vanilla european payoff under
	// GBM dynamics.
	if args.PayoffKind == "european" && args.JumpIntensity == 0 {
		result.AnalyticPrice = pricing.BlackScholes(contract)
	}

	fmt.Print(result.String())

	if result.AnalyticPrice != 0 {
		fmt.Printf("analytic black-scholes: $%.4f (diff $%+.4f)\n", result.AnalyticPrice, result.Price-result.AnalyticPrice)
	}

	if args.CsvOutDir != "" {
		if _, err := utils.ExportResultsToCsv([]*models.PriceResultDTO{result.ToDTO(payoff.Description())}, args.CsvOutDir); err != nil {
			return fmt.Errorf("Run: %w", err)
		}

		if len(trace) > 0 {
			if _, err := utils.ExportConvergenceToCsv(trace, result.RunID.String(), args.CsvOutDir); err != nil {
				return fmt.Errorf("Run: %w", err)
			}
		}
	}

	return nil
}

func runAmerican(ctx context.Context, e *engine.Engine, contract models.OptionContract) error {
	log.WithFields(log.Fields{
		"num_paths": e.Config().NumPaths,
		"num_steps": e.Config().NumSteps,
	}).Info("pricing american contract via longstaff-schwartz")

	result, err := e.LongstaffSchwartz(ctx, contract)
	if err != nil {
		return fmt.Errorf("runAmerican: %w", err)
	}

	european := pricing.BlackScholes(contract)

	fmt.Print(result.String())
	fmt.Printf("european black-scholes floor: $%.4f (early exercise premium $%.4f)\n", european, math.Max(result.Price-european, 0))

	return nil
}

func buildConfig(args RunArgs) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	cfg, err := cfg.ApplyEnvOverrides()
	if err != nil {
		return engine.Config{}, err
	}

	if args.NumPaths > 0 {
		cfg.NumPaths = args.NumPaths
	}
	if args.NumSteps > 0 {
		cfg.NumSteps = args.NumSteps
	}
	if args.Seed > 0 {
		cfg.Seed = args.Seed
	}
	if args.Workers > 0 {
		cfg.Workers = args.Workers
	}

	cfg.Antithetic = args.Antithetic
	cfg.ControlVariate = args.ControlVariate
	cfg.TargetStdError = args.TargetStdError

	return cfg, nil
}

// BuildPayoff maps the CLI payoff flags onto a payoff implementation.
func BuildPayoff(args RunArgs, contract models.OptionContract) (models.Payoff, error) {
	optionType := contract.OptionType

	switch strings.ToLower(args.PayoffKind) {
	case "european", "":
		return models.EuropeanPayoff{Strike: contract.Strike, OptionType: optionType}, nil
	case "asian":
		return models.AsianPayoff{Strike: contract.Strike, OptionType: optionType, Geometric: args.Geometric}, nil
	case "barrier":
		if args.Barrier <= 0 {
			return nil, fmt.Errorf("BuildPayoff: barrier payoff requires a positive --barrier level")
		}

		direction := models.BarrierDirection(args.BarrierDirection)
		if direction != models.BarrierUp && direction != models.BarrierDown {
			return nil, fmt.Errorf("BuildPayoff: invalid barrier direction: %s", args.BarrierDirection)
		}

		return models.BarrierPayoff{
			Strike:     contract.Strike,
			Barrier:    args.Barrier,
			OptionType: optionType,
			Direction:  direction,
			KnockIn:    args.KnockIn,
		}, nil
	case "digital":
		return models.DigitalPayoff{Strike: contract.Strike, CashAmount: args.CashAmount, OptionType: optionType}, nil
	case "lookback":
		return models.LookbackPayoff{Strike: contract.Strike, OptionType: optionType}, nil
	default:
		return nil, fmt.Errorf("BuildPayoff: unknown payoff kind: %s", args.PayoffKind)
	}
}

func init() {
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}
}
