package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	engine "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"gopkg.in/yaml.v2"
)

const schemaName = "backtest-engine-v1-config.json"

// sampleConfig is the YAML layout of a starter configuration. Time bounds are
// left out so the sample runs on the whole data file.
type sampleConfig struct {
	InitialCapital float64                 `yaml:"initial_capital"`
	MarketProfile  types.MarketProfileName `yaml:"market_profile"`
	Granularity    types.Granularity       `yaml:"granularity"`
	RiskFreeRate   float64                 `yaml:"risk_free_rate"`
	Parallelism    int                     `yaml:"parallelism"`
	Strategies     []strategy.Config       `yaml:"strategies"`
}

func main() {
	config := engine.EmptyConfig()

	schemaPath := filepath.Join("./config", schemaName)
	sampleConfigPath := filepath.Join("./config", "backtest-engine-v1-config.yaml")

	if err := validatePaths(schemaPath, sampleConfigPath); err != nil {
		log.Fatal(err)
	}

	if err := generateSchemaFile(config, schemaPath); err != nil {
		log.Fatal(err)
	}

	log.Printf("Schema successfully generated at %s", schemaPath)

	if err := generateSampleConfig(config, sampleConfigPath, schemaName); err != nil {
		log.Fatal(err)
	}
}

func generateSchemaFile(config engine.BacktestEngineV1Config, schemaPath string) error {
	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema to file: %w", err)
	}

	return nil
}

// generateSampleConfig writes a starter configuration with the defaults of two
// strategies. An existing file is left untouched.
func generateSampleConfig(config engine.BacktestEngineV1Config, samplePath string, schemaName string) error {
	if _, err := os.Stat(samplePath); err == nil {
		return nil
	}

	registry := strategy.DefaultRegistry()
	sample := sampleConfig{
		InitialCapital: config.InitialCapital,
		MarketProfile:  config.MarketProfile,
		Granularity:    config.Granularity,
		RiskFreeRate:   config.RiskFreeRate,
		Parallelism:    config.Parallelism,
	}

	for _, strategyType := range []types.StrategyType{types.StrategyTypeMACross, types.StrategyTypeRSI} {
		defaults, err := registry.Defaults(strategyType)
		if err != nil {
			return fmt.Errorf("failed to read %s defaults: %w", strategyType, err)
		}

		sample.Strategies = append(sample.Strategies, defaults)
	}

	yamlBytes, err := yaml.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample config to yaml: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(samplePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	yamlBytes = append([]byte(getSchemaReference(schemaName)), yamlBytes...)
	if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
		return fmt.Errorf("failed to write sample config to file: %w", err)
	}

	log.Printf("Sample config successfully generated at %s", samplePath)

	return nil
}

func validatePaths(schemaPath, sampleConfigPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("schema path cannot be empty")
	}

	if sampleConfigPath == "" {
		return fmt.Errorf("sample config path cannot be empty")
	}

	return validateSchemaName(filepath.Base(schemaPath))
}

func validateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("schema name %q must have .json extension", name)
	}

	return nil
}

// getSchemaReference returns the yaml-language-server header pointing at schemaName.
func getSchemaReference(schemaName string) string {
	return "# yaml-language-server: $schema=" + schemaName + "\n"
}
