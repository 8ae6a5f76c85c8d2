// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"rendafixa-simulator/pkg/constants"
	"rendafixa-simulator/pkg/validation"
)

// Configuration holds all configuration for the renda fixa simulator.
type Configuration struct {
	Plan     PlanConfig
	Scenario ScenarioConfig
	Products []ProductConfig
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// PlanConfig holds the contribution schedule shared by every product.
type PlanConfig struct {
	InitialDeposit      float64 `yaml:"initialDeposit"`
	MonthlyContribution float64 `yaml:"monthlyContribution"`
	HorizonMonths       int     `yaml:"horizonMonths"`
}

// ScenarioConfig holds the constant annual reference rates as decimal
// fractions (0.1375 means 13.75% a.a.).
type ScenarioConfig struct {
	CDIAnnual  float64 `yaml:"cdiAnnual"`
	IPCAAnnual float64 `yaml:"ipcaAnnual"`
}

// ProductConfig describes one fixed-income product to simulate.
type ProductConfig struct {
	Name      string  `yaml:"name"`
	Indexer   string  `yaml:"indexer"`
	Rate      float64 `yaml:"rate"`
	TaxExempt bool    `yaml:"taxExempt"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory reader, e.g. an HTTP upload.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ApplyDefaults fills omitted sections with the reference defaults: the
// hardcoded product trio, the 1000/500/36 plan, and the 13.75%/4.5%
// scenario. A section left entirely zero counts as omitted.
func (conf *Configuration) ApplyDefaults() {
	if len(conf.Products) == 0 {
		conf.Products = DefaultProducts()
	}
	if conf.Plan == (PlanConfig{}) {
		conf.Plan = PlanConfig{
			InitialDeposit:      constants.DefaultInitialDeposit,
			MonthlyContribution: constants.DefaultMonthlyContribution,
			HorizonMonths:       constants.DefaultHorizonMonths,
		}
	}
	if conf.Scenario == (ScenarioConfig{}) {
		conf.Scenario = ScenarioConfig{
			CDIAnnual:  constants.DefaultCDIAnnual,
			IPCAAnnual: constants.DefaultIPCAAnnual,
		}
	}
}

// DefaultProducts returns the reference product list: a taxed prefixed CDB
// and two tax-exempt letters (LCI tracking CDI, LCA over IPCA).
func DefaultProducts() []ProductConfig {
	return []ProductConfig{
		{Name: "CDB - Prefixada", Indexer: "fixed", Rate: 0.1175, TaxExempt: false},
		{Name: "LCI - Pós CDI", Indexer: "cdi", Rate: 0.94, TaxExempt: true},
		{Name: "LCA - IPCA +", Indexer: "ipca", Rate: 0.058, TaxExempt: true},
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	products := make([]validation.ProductInfo, 0, len(conf.Products))
	for _, product := range conf.Products {
		products = append(products, validation.ProductInfo{
			Name: product.Name,
			Rate: product.Rate,
		})
	}

	return validation.ValidateSimulationConfig(validation.PlanInfo{
		InitialDeposit:      conf.Plan.InitialDeposit,
		MonthlyContribution: conf.Plan.MonthlyContribution,
		HorizonMonths:       conf.Plan.HorizonMonths,
	}, products)
}
