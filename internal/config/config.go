// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"time"

	"github.com/Gms006/emprestimos/pkg/constants"
	"github.com/Gms006/emprestimos/pkg/loan"
	"github.com/Gms006/emprestimos/pkg/mathutil"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for emprestimos.
type Configuration struct {
	Loan     LoanConfig
	BaseDate string        `yaml:"baseDate,omitempty"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// LoanConfig holds the parameters of the loan being analyzed.
type LoanConfig struct {
	Name               string
	Principal          float64
	AnnualInterestRate float64
	TermMonths         int
	StartDate          string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, xlsx
	File   string `yaml:"file,omitempty"`   // destination for xlsx output
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Terms parses the loan section into the value object consumed by the
// amortization engine. Domain constraints are checked here so that a bad
// config fails before any schedule rows are produced.
func (c *Configuration) Terms() (loan.Terms, error) {
	startDate, err := time.Parse(DateLayout, c.Loan.StartDate)
	if err != nil {
		return loan.Terms{}, fmt.Errorf("failed to parse loan start date %q: %w", c.Loan.StartDate, err)
	}

	terms := loan.Terms{
		Name:               c.Loan.Name,
		Principal:          c.Loan.Principal,
		AnnualInterestRate: c.Loan.AnnualInterestRate,
		TermMonths:         c.Loan.TermMonths,
		StartDate:          startDate,
	}
	if err := terms.Validate(); err != nil {
		return loan.Terms{}, err
	}
	return terms, nil
}

// ParseBaseDate returns the classification base date, defaulting to today
// when none is configured.
func (c *Configuration) ParseBaseDate() (time.Time, error) {
	return c.ParseBaseDateWithFixedTime(time.Now())
}

// ParseBaseDateWithFixedTime parses the base date using an injectable fixed
// time for testing.
func (c *Configuration) ParseBaseDateWithFixedTime(fixedTime time.Time) (time.Time, error) {
	if c.BaseDate == "" {
		return time.Parse(DateLayout, fixedTime.Format(DateLayout))
	}
	baseDate, err := time.Parse(DateLayout, c.BaseDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse base date %q: %w", c.BaseDate, err)
	}
	return baseDate, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard domain violations are reported by Terms; these are
// soft checks against the bounds the interactive form enforces.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Loan.AnnualInterestRate > constants.MaxAnnualInterestRate {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has an annual interest rate above %.0f%% (%.2f%%)",
			c.Loan.Name, constants.MaxAnnualInterestRate, c.Loan.AnnualInterestRate))
	}

	if c.Loan.TermMonths > constants.MaxTermMonths {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has a term above %d months (%d)",
			c.Loan.Name, constants.MaxTermMonths, c.Loan.TermMonths))
	}

	if c.Loan.Principal != mathutil.Round(c.Loan.Principal) {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has a principal with sub-cent precision (%v) - amounts are rounded for display only",
			c.Loan.Name, c.Loan.Principal))
	}

	if c.BaseDate != "" && c.Loan.StartDate != "" {
		baseDate, baseErr := time.Parse(DateLayout, c.BaseDate)
		startDate, startErr := time.Parse(DateLayout, c.Loan.StartDate)
		if baseErr == nil && startErr == nil && baseDate.Before(startDate) {
			warnings = append(warnings, fmt.Sprintf("Base date %s precedes loan start date %s - the analysis predates the loan",
				c.BaseDate, c.Loan.StartDate))
		}
	}

	return warnings
}
