package config

import (
	"strings"

	"rendafixa-simulator/pkg/rates"
	"rendafixa-simulator/pkg/simulation"
)

// ParseIndexer maps a configuration indexer string onto the closed indexer
// enumeration. Accepts the Portuguese labels used by the original product
// material alongside the canonical names. Unknown strings pass through
// unchanged so the engine can reject the product explicitly.
func ParseIndexer(value string) rates.Indexer {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fixed", "prefixada", "prefixado", "pre":
		return rates.IndexerFixed
	case "cdi", "pos cdi", "pós cdi", "pos-cdi":
		return rates.IndexerCDI
	case "ipca", "ipca+", "ipca +":
		return rates.IndexerIPCA
	}
	return rates.Indexer(strings.ToLower(strings.TrimSpace(value)))
}

// ToPlan converts the plan section to the engine's plan type.
func (conf *Configuration) ToPlan() simulation.Plan {
	return simulation.Plan{
		InitialDeposit:      conf.Plan.InitialDeposit,
		MonthlyContribution: conf.Plan.MonthlyContribution,
		HorizonMonths:       conf.Plan.HorizonMonths,
	}
}

// ToScenario converts the scenario section to the engine's scenario type.
func (conf *Configuration) ToScenario() simulation.Scenario {
	return simulation.Scenario{
		CDIAnnual:  conf.Scenario.CDIAnnual,
		IPCAAnnual: conf.Scenario.IPCAAnnual,
	}
}

// ToProducts converts the configured products to the engine's product type.
func (conf *Configuration) ToProducts() []simulation.Product {
	products := make([]simulation.Product, 0, len(conf.Products))
	for _, product := range conf.Products {
		products = append(products, simulation.Product{
			Name:      product.Name,
			Indexer:   ParseIndexer(product.Indexer),
			Rate:      product.Rate,
			TaxExempt: product.TaxExempt,
		})
	}
	return products
}
