// Package simulation projects fixed-income product balances month by month
// and nets out regressive income tax where it applies.
package simulation

import (
	"go.uber.org/zap"

	"rendafixa-simulator/pkg/rates"
	"rendafixa-simulator/pkg/tax"
)

// Scenario holds the macroeconomic reference rates, constant across the
// whole horizon. Annual rates as decimal fractions.
type Scenario struct {
	CDIAnnual  float64
	IPCAAnnual float64
}

// Plan holds the contribution schedule shared by every simulated product.
type Plan struct {
	InitialDeposit      float64
	MonthlyContribution float64
	HorizonMonths       int
}

// Product describes one fixed-income product archetype. Rate meaning
// depends on the indexer (see rates.ResolveMonthlyRate).
type Product struct {
	Name      string
	Indexer   rates.Indexer
	Rate      float64
	TaxExempt bool
}

// Result is the projection of a single product over the plan horizon.
// GrossGain is always pre-tax; NetGain is GrossGain minus TaxWithheld.
type Result struct {
	ProductName  string
	Trajectory   []float64
	MonthlyRate  float64
	GrossGain    float64
	TaxRate      float64
	TaxWithheld  float64
	NetGain      float64
	FinalBalance float64
	TaxExempt    bool
}

// SkippedProduct records a product that failed validation during a batch run.
type SkippedProduct struct {
	ProductName string
	Err         error
}

// Batch aggregates the results of projecting every product against one plan
// and scenario. Best points into Results (nil when no product succeeded)
// and is the stable maximum by FinalBalance.
type Batch struct {
	Results []Result
	Best    *Result
	Skipped []SkippedProduct
}

// Engine runs product projections.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a projection engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ValidatePlan checks the contribution plan's domain constraints.
func ValidatePlan(plan Plan) error {
	if plan.HorizonMonths < 1 {
		return &InvalidContributionPlanError{Reason: "horizonMonths must be at least 1"}
	}
	if plan.InitialDeposit < 0 {
		return &InvalidContributionPlanError{Reason: "initialDeposit must not be negative"}
	}
	if plan.MonthlyContribution < 0 {
		return &InvalidContributionPlanError{Reason: "monthlyContribution must not be negative"}
	}
	return nil
}

// ValidateProduct checks a single product's domain constraints.
func ValidateProduct(product Product) error {
	if !product.Indexer.Valid() {
		return &InvalidProductSpecError{
			Product: product.Name,
			Reason:  (&rates.UnknownIndexerError{Indexer: product.Indexer}).Error(),
		}
	}
	if product.Rate < 0 {
		return &InvalidProductSpecError{Product: product.Name, Reason: "rate must not be negative"}
	}
	return nil
}

// ValidateScenario checks the economic scenario's domain constraints.
// The scenario is shared by the whole batch, so violations use the same
// fail-fast error kind as the plan.
func ValidateScenario(scenario Scenario) error {
	if scenario.CDIAnnual < 0 {
		return &InvalidContributionPlanError{Reason: "cdiAnnual must not be negative"}
	}
	if scenario.IPCAAnnual < 0 {
		return &InvalidContributionPlanError{Reason: "ipcaAnnual must not be negative"}
	}
	return nil
}

// Project simulates one product over the plan horizon. The trajectory has
// horizonMonths+1 entries with the initial deposit at index 0.
func (e *Engine) Project(product Product, plan Plan, scenario Scenario) (Result, error) {
	if err := ValidatePlan(plan); err != nil {
		return Result{}, err
	}
	if err := ValidateProduct(product); err != nil {
		return Result{}, err
	}

	monthlyRate, err := rates.ResolveMonthlyRate(product.Indexer, product.Rate, scenario.CDIAnnual, scenario.IPCAAnnual)
	if err != nil {
		return Result{}, &InvalidProductSpecError{Product: product.Name, Reason: err.Error()}
	}

	balance := plan.InitialDeposit
	trajectory := make([]float64, 0, plan.HorizonMonths+1)
	trajectory = append(trajectory, balance)
	for month := 1; month <= plan.HorizonMonths; month++ {
		balance = balance*(1+monthlyRate) + plan.MonthlyContribution
		trajectory = append(trajectory, balance)
	}

	// Contributed principal is treated at face value; the time-value
	// distinction between principal and reinvested gains is ignored.
	contributed := plan.InitialDeposit + plan.MonthlyContribution*float64(plan.HorizonMonths)
	grossGain := balance - contributed

	result := Result{
		ProductName:  product.Name,
		Trajectory:   trajectory,
		MonthlyRate:  monthlyRate,
		GrossGain:    grossGain,
		TaxExempt:    product.TaxExempt,
		FinalBalance: balance,
		NetGain:      grossGain,
	}

	if !product.TaxExempt {
		days := tax.HoldingDays(plan.HorizonMonths)
		result.TaxRate = tax.RegressiveRate(days)
		result.TaxWithheld = grossGain * result.TaxRate
		result.FinalBalance = balance - result.TaxWithheld
		result.NetGain = grossGain - result.TaxWithheld
	}

	e.logger.Debug("projected product",
		zap.String("op", "simulation.Project"),
		zap.String("product", product.Name),
		zap.Float64("monthlyRate", monthlyRate),
		zap.Float64("finalBalance", result.FinalBalance),
	)

	return result, nil
}

// ProjectAll simulates every product against the shared plan and scenario.
// An invalid plan or scenario fails the whole batch; an invalid product is
// skipped and recorded while the rest continue.
func (e *Engine) ProjectAll(products []Product, plan Plan, scenario Scenario) (Batch, error) {
	if err := ValidatePlan(plan); err != nil {
		return Batch{}, err
	}
	if err := ValidateScenario(scenario); err != nil {
		return Batch{}, err
	}

	var batch Batch
	for _, product := range products {
		result, err := e.Project(product, plan, scenario)
		if err != nil {
			e.logger.Warn("skipping product",
				zap.String("op", "simulation.ProjectAll"),
				zap.String("product", product.Name),
				zap.Error(err),
			)
			batch.Skipped = append(batch.Skipped, SkippedProduct{ProductName: product.Name, Err: err})
			continue
		}
		batch.Results = append(batch.Results, result)
	}

	// Stable max: ties resolve to the earlier product in the input order.
	for i := range batch.Results {
		if batch.Best == nil || batch.Results[i].FinalBalance > batch.Best.FinalBalance {
			batch.Best = &batch.Results[i]
		}
	}

	return batch, nil
}
