package utils

import (
	"fmt"
	"os"
	"path"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/option-pricer/src/models"
)

// ExportResultsToCsv writes pricing run results to <outDir>/results.csv.
func ExportResultsToCsv(results []*models.PriceResultDTO, outDir string) (string, error) {
	outFile, err := exportCsv(results, outDir, "results.csv")
	if err != nil {
		return "", fmt.Errorf("ExportResultsToCsv: %w", err)
	}

	log.Infof("Exported %d pricing results to %s", len(results), outFile)

	return outFile, nil
}

// ExportConvergenceToCsv writes the per-batch convergence trace of a run
// to <outDir>/convergence-<runID>.csv.
func ExportConvergenceToCsv(trace []models.ConvergencePointDTO, runID string, outDir string) (string, error) {
	points := make([]*models.ConvergencePointDTO, 0, len(trace))
	for i := range trace {
		points = append(points, &trace[i])
	}

	outFile, err := exportCsv(points, outDir, fmt.Sprintf("convergence-%s.csv", runID))
	if err != nil {
		return "", fmt.Errorf("ExportConvergenceToCsv: %w", err)
	}

	log.Infof("Exported %d convergence points to %s", len(points), outFile)

	return outFile, nil
}

func exportCsv(rows interface{}, outDir string, fname string) (string, error) {
	// Create export directory
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return "", fmt.Errorf("exportCsv: error creating output directory: %v", err)
		}
	}

	outFile := path.Join(outDir, fname)

	file, err := os.Create(outFile)
	if err != nil {
		return "", fmt.Errorf("exportCsv: error creating file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return "", fmt.Errorf("exportCsv: error marshalling file: %v", err)
	}

	return outFile, nil
}
