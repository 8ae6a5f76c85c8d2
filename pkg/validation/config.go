package validation

import (
	"fmt"
	"strings"
)

// ProductInfo carries the product fields relevant for configuration checks.
type ProductInfo struct {
	Name string
	Rate float64
}

// PlanInfo carries the contribution plan fields relevant for configuration checks.
type PlanInfo struct {
	InitialDeposit      float64
	MonthlyContribution float64
	HorizonMonths       int
}

// longHorizonMonths is the point where a constant-scenario projection
// stops being a believable estimate.
const longHorizonMonths = 480

// ValidateSimulationConfig performs general validation of the simulation
// configuration and returns human-readable warnings. Hard domain violations
// are left to the engine, which reports them as typed errors.
func ValidateSimulationConfig(plan PlanInfo, products []ProductInfo) []string {
	var warnings []string

	if plan.InitialDeposit == 0 && plan.MonthlyContribution == 0 {
		warnings = append(warnings, "plan has no initial deposit and no monthly contribution; every trajectory will stay at zero")
	}
	if plan.HorizonMonths > longHorizonMonths {
		warnings = append(warnings, fmt.Sprintf("horizon of %d months is very long for a constant-rate scenario; results are rough estimates", plan.HorizonMonths))
	}

	if len(products) == 0 {
		warnings = append(warnings, "no products configured; the default product list will be used")
	}

	seen := make(map[string]bool)
	for _, product := range products {
		name := strings.TrimSpace(product.Name)
		if name == "" {
			warnings = append(warnings, "product with empty name configured")
			continue
		}
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("duplicate product name %q; results will be ambiguous", name))
		}
		seen[name] = true
		if product.Rate == 0 {
			warnings = append(warnings, fmt.Sprintf("product %q has a zero rate parameter", name))
		}
	}

	return warnings
}
