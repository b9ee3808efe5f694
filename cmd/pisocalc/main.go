package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/happyhipo/pisocalc/internal/calculator"
	"github.com/happyhipo/pisocalc/internal/config"
	"github.com/happyhipo/pisocalc/pkg/constants"
	"github.com/happyhipo/pisocalc/pkg/output"
	"github.com/happyhipo/pisocalc/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "warn" // Keep the report output clean by default
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "console" // The CLI is interactive; console reads better
	}

	// Configure encoder
	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	price := flag.Float64("price", -1, "property price in euros (required)")
	commissionRate := flag.Float64("commission-rate", -1, "agency commission as a fraction (e.g. 0.035)")
	downPayment := flag.Float64("down-payment", -1, "available down payment in euros")
	loanRate := flag.Float64("loan-rate", -1, "annual mortgage rate as a fraction (e.g. 0.025)")
	loanTerm := flag.Int("loan-term", 0, "mortgage term in years")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get market parameters and defaults
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *price < 0 {
		logger.Fatal("a non-negative -price is required",
			zap.String("op", "main"),
		)
	}

	// Unset flags fall back to the configured defaults.
	inputs := calculator.PurchaseInputs{
		Price:          *price,
		CommissionRate: *commissionRate,
		DownPayment:    *downPayment,
		LoanRate:       *loanRate,
		LoanTermYears:  *loanTerm,
	}
	if inputs.CommissionRate < 0 {
		inputs.CommissionRate = conf.Defaults.CommissionRate
	}
	if inputs.DownPayment < 0 {
		inputs.DownPayment = conf.Defaults.DownPayment
	}
	if inputs.LoanRate < 0 {
		inputs.LoanRate = conf.Defaults.LoanRate
	}
	if inputs.LoanTermYears < 1 {
		inputs.LoanTermYears = conf.Defaults.LoanTermYears
	}

	// Display warnings for legal-but-suspicious inputs.
	inputWarnings := validation.ValidatePurchaseInputs(inputs.Price, inputs.CommissionRate,
		inputs.DownPayment, inputs.LoanRate, inputs.LoanTermYears)
	for _, warning := range inputWarnings {
		logger.Warn("Input warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Run the calculation.
	result, err := calculator.Calculate(logger, inputs, conf.MarketParameters())
	if err != nil {
		logger.Fatal("failed to compute purchase costs",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	case constants.OutputFormatYAML:
		if err := output.YamlFormat(result); err != nil {
			logger.Fatal("failed to render result",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
