package run

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-pricer/src/engine"
	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/risk"
	"github.com/jiaming2012/option-pricer/src/simulation"
	"github.com/jiaming2012/option-pricer/src/utils"
)

type RunArgs struct {
	GoEnv         string
	Spot          float64
	Drift         float64
	Vol           float64
	Horizon       float64
	Confidence    float64
	NumPaths      int
	NumSteps      int
	Seed          uint64
	JumpIntensity float64
	JumpMean      float64
	JumpVol       float64
}

func Run(ctx context.Context, args RunArgs) error {
	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		return fmt.Errorf("Run: failed to init environment variables: %w", err)
	}

	if args.Spot <= 0 {
		return fmt.Errorf("Run: spot must be positive, got %v", args.Spot)
	}

	if args.Horizon <= 0 {
		return fmt.Errorf("Run: horizon must be positive, got %v", args.Horizon)
	}

	cfg := engine.DefaultConfig()

	cfg, err := cfg.ApplyEnvOverrides()
	if err != nil {
		return fmt.Errorf("Run: %w", err)
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

	var model simulation.Model
	if args.JumpIntensity > 0 {
		model = simulation.NewMertonJumpDiffusion(args.Spot, args.Drift, args.Vol, args.Horizon, args.JumpIntensity, args.JumpMean, args.JumpVol)
	} else {
		model = simulation.NewGBM(args.Spot, args.Drift, args.Vol, args.Horizon)
	}

	log.WithFields(log.Fields{
		"model":      model.Describe(),
		"confidence": args.Confidence,
		"num_paths":  cfg.NumPaths,
	}).Info("simulating horizon returns")

	e := engine.NewEngine(cfg)

	returns, err := e.SimulateTerminalReturns(ctx, model, cfg.NumSteps)
	if err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	report, err := risk.Report(returns, args.Confidence)
	if err != nil {
		return fmt.Errorf("Run: failed to build risk report: %w", err)
	}

	fmt.Print(renderTable(report))

	return nil
}

func renderTable(report models.RiskReport) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")
	table.SetHeader([]string{"metric", "value"})

	table.Append([]string{"confidence", fmt.Sprintf("%.1f%%", report.Confidence*100)})
	table.Append([]string{"value at risk", fmt.Sprintf("%.4f%%", report.ValueAtRisk*100)})
	table.Append([]string{"expected shortfall", fmt.Sprintf("%.4f%%", report.ExpectedShortfall*100)})
	table.Append([]string{"mean return", fmt.Sprintf("%.4f%%", report.MeanReturn*100)})
	table.Append([]string{"std dev", fmt.Sprintf("%.4f%%", report.StdDevReturn*100)})
	table.Append([]string{"paths", fmt.Sprintf("%d", report.NumPaths)})

	table.Render()

	return display.String()
}
