package run

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/option-pricer/src/engine"
	"github.com/jiaming2012/option-pricer/src/models"
	"github.com/jiaming2012/option-pricer/src/pricing"
	"github.com/jiaming2012/option-pricer/src/utils"
)

type RunArgs struct {
	GoEnv        string
	ConfigInPath string
	NumPaths     int
	Seed         uint64
	CsvOutDir    string
}

type scenarioResult struct {
	scenario models.ScenarioYAML
	result   models.PriceResult
	err      error
}

func Run(ctx context.Context, args RunArgs) error {
	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		return fmt.Errorf("Run: failed to init environment variables: %w", err)
	}

	data, err := os.ReadFile(args.ConfigInPath)
	if err != nil {
		return fmt.Errorf("Run: failed to read scenario config: %v", err)
	}

	var config models.ScenarioConfigYAML
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("Run: failed to unmarshal scenario config: %v", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("Run: no scenarios found in %s", args.ConfigInPath)
	}

	cfg := engine.DefaultConfig()

	cfg, err = cfg.ApplyEnvOverrides()
	if err != nil {
		return fmt.Errorf("Run: %w", err)
	}

	if args.NumPaths > 0 {
		cfg.NumPaths = args.NumPaths
	}
	if args.Seed > 0 {
		cfg.Seed = args.Seed
	}

	// Scenarios run concurrently; each Engine.Price call manages its own
	// worker pool, so a single worker per scenario keeps the total
	// goroutine count bounded.
	scenarioCfg := cfg
	scenarioCfg.Workers = 1

	e := engine.NewEngine(scenarioCfg)

	log.WithFields(log.Fields{
		"config":    args.ConfigInPath,
		"scenarios": len(config.Scenarios),
		"num_paths": scenarioCfg.NumPaths,
	}).Info("pricing scenario batch")

	results := make([]scenarioResult, len(config.Scenarios))

	var wg sync.WaitGroup
	for i, scenario := range config.Scenarios {
		wg.Add(1)

		go func(idx int, s models.ScenarioYAML) {
			defer wg.Done()
			results[idx] = priceScenario(ctx, e, s)
		}(i, scenario)
	}
	wg.Wait()

	var dtos []*models.PriceResultDTO
	for _, r := range results {
		if r.err != nil {
			return fmt.Errorf("Run: scenario %s: %w", r.scenario.Name, r.err)
		}

		dtos = append(dtos, r.result.ToDTO(r.scenario.Name))
	}

	fmt.Print(renderTable(results))

	if args.CsvOutDir != "" {
		if _, err := utils.ExportResultsToCsv(dtos, args.CsvOutDir); err != nil {
			return fmt.Errorf("Run: %w", err)
		}
	}

	return nil
}

func priceScenario(ctx context.Context, e *engine.Engine, scenario models.ScenarioYAML) scenarioResult {
	contract, err := scenario.ToContract()
	if err != nil {
		return scenarioResult{scenario: scenario, err: err}
	}

	payoff := models.EuropeanPayoff{Strike: contract.Strike, OptionType: contract.OptionType}

	result, err := e.Price(ctx, contract, payoff)
	if err != nil {
		return scenarioResult{scenario: scenario, err: err}
	}

	result.AnalyticPrice = pricing.BlackScholes(contract)

	return scenarioResult{scenario: scenario, result: result}
}

func renderTable(results []scenarioResult) string {
	display := &strings.Builder{}

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")
	table.SetHeader([]string{"scenario", "type", "mc price", "std error", "analytic", "diff"})

	for _, r := range results {
		table.Append([]string{
			r.scenario.Name,
			r.scenario.OptionType,
			fmt.Sprintf("$%.4f", r.result.Price),
			fmt.Sprintf("$%.4f", r.result.StdError),
			fmt.Sprintf("$%.4f", r.result.AnalyticPrice),
			fmt.Sprintf("$%+.4f", r.result.Price-r.result.AnalyticPrice),
		})
	}

	table.Render()

	return display.String()
}
