// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/invoice-roi/internal/calculator"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for invoice-roi.
type Configuration struct {
	Scenario calculator.ScenarioInput `yaml:"scenario"`
	Database DatabaseConfig           `yaml:"database"`
	Logging  LoggingConfig            `yaml:"logging,omitempty"`
	Output   OutputConfig             `yaml:"output,omitempty"`
}

// DatabaseConfig locates the scenario database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Values absent from the file fall back to the default
// scenario inputs and may be overridden by INVOICE_ROI_* environment
// variables (e.g. INVOICE_ROI_SCENARIO_HOURLY_WAGE).
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// LoadEnvironment builds a configuration from the defaults and INVOICE_ROI_*
// environment variables alone.
func LoadEnvironment() (*Configuration, error) {
	return decode(newViper())
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Configuration {
	return &Configuration{
		Scenario: calculator.DefaultInput(),
		Database: DatabaseConfig{Path: constants.DefaultDatabaseFile},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Defaults()
	v.SetDefault("scenario."+calculator.FieldScenarioName, defaults.Scenario.ScenarioName)
	v.SetDefault("scenario."+calculator.FieldMonthlyInvoiceVolume, defaults.Scenario.MonthlyInvoiceVolume)
	v.SetDefault("scenario."+calculator.FieldNumAPStaff, defaults.Scenario.NumAPStaff)
	v.SetDefault("scenario."+calculator.FieldHourlyWage, defaults.Scenario.HourlyWage)
	v.SetDefault("scenario."+calculator.FieldErrorCost, defaults.Scenario.ErrorCost)
	v.SetDefault("scenario."+calculator.FieldTimeHorizonMonths, defaults.Scenario.TimeHorizonMonths)
	v.SetDefault("scenario."+calculator.FieldOneTimeImplementationCost, defaults.Scenario.OneTimeImplementationCost)
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")

	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}
