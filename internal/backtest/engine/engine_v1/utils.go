package engine

import (
	"fmt"
	"path/filepath"
	"strings"
)

// getResultFolder returns <results>/<strategy>[/<start>_<end>]/<symbol>.
func getResultFolder(resultsFolder string, strategyName string, symbol string, config BacktestEngineV1Config) string {
	strategyFolder := filepath.Join(resultsFolder, folderName(strategyName))

	// Create data folder with time range if specified
	dataFolder := strategyFolder

	if config.StartTime.IsSome() || config.EndTime.IsSome() {
		startTimeStr := "all"
		endTimeStr := "all"

		if config.StartTime.IsSome() {
			startTimeStr = config.StartTime.Unwrap().Format("20060102")
		}

		if config.EndTime.IsSome() {
			endTimeStr = config.EndTime.Unwrap().Format("20060102")
		}

		dataFolder = filepath.Join(strategyFolder, fmt.Sprintf("%s_%s", startTimeStr, endTimeStr))
	}

	return filepath.Join(dataFolder, folderName(symbol))
}

// folderName turns MA_CROSS(5,20) into MA_CROSS_5_20.
func folderName(name string) string {
	replacer := strings.NewReplacer("(", "_", ")", "", ",", "_", " ", "_", "/", "_", "\\", "_", ":", "_")

	return replacer.Replace(name)
}
