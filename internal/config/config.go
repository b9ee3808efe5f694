// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/happyhipo/pisocalc/internal/calculator"
	"github.com/happyhipo/pisocalc/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for pisocalc.
type Configuration struct {
	Market   MarketConfig
	Defaults DefaultsConfig
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// MarketConfig holds the fiscal parameters of the purchase model.
type MarketConfig struct {
	VATRate         float64   `mapstructure:"vatRate" yaml:"vatRate"`
	TransferTaxRate float64   `mapstructure:"transferTaxRate" yaml:"transferTaxRate"`
	FixedFees       float64   `mapstructure:"fixedFees" yaml:"fixedFees"`
	FinancingTiers  []float64 `mapstructure:"financingTiers" yaml:"financingTiers"`
}

// DefaultsConfig holds the values that seed the CLI flags.
type DefaultsConfig struct {
	CommissionRate float64 `mapstructure:"commissionRate" yaml:"commissionRate"`
	DownPayment    float64 `mapstructure:"downPayment" yaml:"downPayment"`
	LoanRate       float64 `mapstructure:"loanRate" yaml:"loanRate"`
	LoanTermYears  int     `mapstructure:"loanTermYears" yaml:"loanTermYears"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, yaml
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file is not an error; the built-in defaults
// are returned instead.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		} else {
			v.SetConfigFile(configPath)
			v.SetConfigType("yml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("market.vatRate", constants.VATRate)
	v.SetDefault("market.transferTaxRate", constants.TransferTaxRate)
	v.SetDefault("market.fixedFees", constants.FixedFees)
	v.SetDefault("market.financingTiers", constants.DefaultFinancingTiers)
	v.SetDefault("defaults.commissionRate", constants.DefaultCommissionRate)
	v.SetDefault("defaults.downPayment", constants.DefaultDownPayment)
	v.SetDefault("defaults.loanRate", constants.DefaultLoanRate)
	v.SetDefault("defaults.loanTermYears", constants.DefaultLoanTermYears)
}

// MarketParameters converts the market section into calculator parameters.
func (c *Configuration) MarketParameters() calculator.MarketParameters {
	return calculator.MarketParameters{
		VATRate:         c.Market.VATRate,
		TransferTaxRate: c.Market.TransferTaxRate,
		FixedFees:       c.Market.FixedFees,
		FinancingTiers:  append([]float64(nil), c.Market.FinancingTiers...),
	}
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Market.VATRate < 0 || c.Market.VATRate >= 1 {
		warnings = append(warnings, fmt.Sprintf("VAT rate %.4f is outside [0, 1)", c.Market.VATRate))
	}
	if c.Market.TransferTaxRate < 0 || c.Market.TransferTaxRate >= 1 {
		warnings = append(warnings, fmt.Sprintf("transfer tax rate %.4f is outside [0, 1)", c.Market.TransferTaxRate))
	}
	if c.Market.FixedFees < 0 {
		warnings = append(warnings, fmt.Sprintf("fixed fees %.2f are negative", c.Market.FixedFees))
	}
	if len(c.Market.FinancingTiers) == 0 {
		warnings = append(warnings, "no financing tiers configured; the financing table will be empty")
	}
	for _, tier := range c.Market.FinancingTiers {
		if tier <= 0 || tier > 1 {
			warnings = append(warnings, fmt.Sprintf("financing tier %.2f is outside (0, 1]", tier))
		}
	}
	if c.Defaults.CommissionRate < 0 || c.Defaults.CommissionRate > 1 {
		warnings = append(warnings, fmt.Sprintf("default commission rate %.4f is outside [0, 1]", c.Defaults.CommissionRate))
	}
	if c.Defaults.DownPayment < 0 {
		warnings = append(warnings, fmt.Sprintf("default down payment %.2f is negative", c.Defaults.DownPayment))
	}
	if c.Defaults.LoanRate < 0 {
		warnings = append(warnings, fmt.Sprintf("default loan rate %.4f is negative", c.Defaults.LoanRate))
	}
	if c.Defaults.LoanTermYears > constants.MaxReasonableTermYears {
		warnings = append(warnings, fmt.Sprintf("default loan term %d years exceeds %d years",
			c.Defaults.LoanTermYears, constants.MaxReasonableTermYears))
	}

	return warnings
}
