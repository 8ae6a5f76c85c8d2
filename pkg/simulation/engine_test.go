package simulation

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"rendafixa-simulator/pkg/rates"
	"rendafixa-simulator/pkg/tax"
)

var (
	referencePlan = Plan{
		InitialDeposit:      1000,
		MonthlyContribution: 500,
		HorizonMonths:       36,
	}
	referenceScenario = Scenario{
		CDIAnnual:  0.1375,
		IPCAAnnual: 0.045,
	}
)

func TestProjectTrajectoryInvariants(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	products := []Product{
		{Name: "CDB - Prefixada", Indexer: rates.IndexerFixed, Rate: 0.1175},
		{Name: "LCI - Pós CDI", Indexer: rates.IndexerCDI, Rate: 0.94, TaxExempt: true},
		{Name: "LCA - IPCA +", Indexer: rates.IndexerIPCA, Rate: 0.058, TaxExempt: true},
	}

	for _, product := range products {
		t.Run(product.Name, func(t *testing.T) {
			result, err := engine.Project(product, referencePlan, referenceScenario)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}

			if len(result.Trajectory) != referencePlan.HorizonMonths+1 {
				t.Fatalf("trajectory length = %d, expected %d",
					len(result.Trajectory), referencePlan.HorizonMonths+1)
			}
			if result.Trajectory[0] != referencePlan.InitialDeposit {
				t.Errorf("trajectory[0] = %v, expected initial deposit %v",
					result.Trajectory[0], referencePlan.InitialDeposit)
			}
			for i := 1; i < len(result.Trajectory); i++ {
				expected := result.Trajectory[i-1]*(1+result.MonthlyRate) + referencePlan.MonthlyContribution
				if math.Abs(result.Trajectory[i]-expected) > 1e-9 {
					t.Fatalf("trajectory[%d] = %v, expected recurrence value %v",
						i, result.Trajectory[i], expected)
				}
			}
		})
	}
}

func TestProjectMonotonicTrajectory(t *testing.T) {
	engine := NewEngine(nil)
	product := Product{Name: "CDB", Indexer: rates.IndexerFixed, Rate: 0.10}

	result, err := engine.Project(product, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	for i := 1; i < len(result.Trajectory); i++ {
		if result.Trajectory[i] < result.Trajectory[i-1] {
			t.Fatalf("trajectory decreased at month %d: %v -> %v",
				i, result.Trajectory[i-1], result.Trajectory[i])
		}
	}
}

func TestProjectTaxExempt(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	product := Product{Name: "LCA - IPCA +", Indexer: rates.IndexerIPCA, Rate: 0.058, TaxExempt: true}

	result, err := engine.Project(product, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	last := result.Trajectory[len(result.Trajectory)-1]
	if result.FinalBalance != last {
		t.Errorf("exempt product finalBalance = %v, expected trajectory end %v",
			result.FinalBalance, last)
	}
	if result.TaxWithheld != 0 {
		t.Errorf("exempt product withheld tax %v, expected 0", result.TaxWithheld)
	}
	if result.NetGain != result.GrossGain {
		t.Errorf("exempt product netGain = %v, expected grossGain %v",
			result.NetGain, result.GrossGain)
	}
}

func TestProjectTaxedProduct(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	product := Product{Name: "CDB - Prefixada", Indexer: rates.IndexerFixed, Rate: 0.1175}

	result, err := engine.Project(product, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	// 36 months is 1080 days under the 30-day convention, final bracket.
	if result.TaxRate != 0.15 {
		t.Errorf("taxRate = %v, expected 0.15", result.TaxRate)
	}

	last := result.Trajectory[len(result.Trajectory)-1]
	expectedTax := result.GrossGain * tax.RegressiveRate(tax.HoldingDays(referencePlan.HorizonMonths))
	if math.Abs(result.TaxWithheld-expectedTax) > 1e-9 {
		t.Errorf("taxWithheld = %v, expected %v", result.TaxWithheld, expectedTax)
	}
	if math.Abs(result.FinalBalance-(last-expectedTax)) > 1e-9 {
		t.Errorf("finalBalance = %v, expected %v", result.FinalBalance, last-expectedTax)
	}
	if math.Abs(result.NetGain-(result.GrossGain-expectedTax)) > 1e-9 {
		t.Errorf("netGain = %v, expected %v", result.NetGain, result.GrossGain-expectedTax)
	}
}

// Reference scenario from the product model: R$1000 initial, R$500 monthly,
// 36 months, prefixed 11.75% a.a.
func TestProjectReferenceScenario(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	product := Product{Name: "CDB - Prefixada", Indexer: rates.IndexerFixed, Rate: 0.1175}

	result, err := engine.Project(product, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	expectedRate := math.Pow(1.1175, 1.0/12) - 1
	if math.Abs(result.MonthlyRate-expectedRate) > 1e-12 {
		t.Errorf("monthlyRate = %v, expected %v", result.MonthlyRate, expectedRate)
	}

	expectedFirstMonth := 1000*(1+expectedRate) + 500
	if math.Abs(result.Trajectory[1]-expectedFirstMonth) > 1e-9 {
		t.Errorf("trajectory[1] = %v, expected %v", result.Trajectory[1], expectedFirstMonth)
	}
	// Roughly R$1509.30 with the monthly rate near 0.93%.
	if math.Abs(result.Trajectory[1]-1509.30) > 0.05 {
		t.Errorf("trajectory[1] = %v, expected about 1509.30", result.Trajectory[1])
	}
}

func TestProjectZeroHorizonRejected(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	plan := Plan{InitialDeposit: 1000, MonthlyContribution: 500, HorizonMonths: 0}
	product := Product{Name: "CDB", Indexer: rates.IndexerFixed, Rate: 0.1175}

	_, err := engine.Project(product, plan, referenceScenario)
	if err == nil {
		t.Fatal("expected error for zero horizon, got nil")
	}
	var planErr *InvalidContributionPlanError
	if !errors.As(err, &planErr) {
		t.Fatalf("expected *InvalidContributionPlanError, got %T", err)
	}
}

func TestProjectInvalidPlanValues(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	product := Product{Name: "CDB", Indexer: rates.IndexerFixed, Rate: 0.1175}

	tests := []struct {
		name string
		plan Plan
	}{
		{"negative deposit", Plan{InitialDeposit: -1, MonthlyContribution: 500, HorizonMonths: 12}},
		{"negative contribution", Plan{InitialDeposit: 1000, MonthlyContribution: -1, HorizonMonths: 12}},
		{"negative horizon", Plan{InitialDeposit: 1000, MonthlyContribution: 500, HorizonMonths: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Project(product, tt.plan, referenceScenario)
			var planErr *InvalidContributionPlanError
			if !errors.As(err, &planErr) {
				t.Fatalf("expected *InvalidContributionPlanError, got %v", err)
			}
		})
	}
}

func TestProjectInvalidProduct(t *testing.T) {
	engine := NewEngine(zap.NewNop())

	tests := []struct {
		name    string
		product Product
	}{
		{"unknown indexer", Product{Name: "Poupança", Indexer: rates.Indexer("poupanca"), Rate: 0.05}},
		{"negative rate", Product{Name: "CDB", Indexer: rates.IndexerFixed, Rate: -0.01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Project(tt.product, referencePlan, referenceScenario)
			var specErr *InvalidProductSpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("expected *InvalidProductSpecError, got %v", err)
			}
		})
	}
}

func TestProjectAllRankingAndOrder(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	products := []Product{
		{Name: "CDB - Prefixada", Indexer: rates.IndexerFixed, Rate: 0.1175},
		{Name: "LCI - Pós CDI", Indexer: rates.IndexerCDI, Rate: 0.94, TaxExempt: true},
		{Name: "LCA - IPCA +", Indexer: rates.IndexerIPCA, Rate: 0.058, TaxExempt: true},
	}

	batch, err := engine.ProjectAll(products, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("ProjectAll() error = %v", err)
	}

	if len(batch.Results) != len(products) {
		t.Fatalf("got %d results, expected %d", len(batch.Results), len(products))
	}
	for i, product := range products {
		if batch.Results[i].ProductName != product.Name {
			t.Errorf("result %d is %q, expected input order %q", i, batch.Results[i].ProductName, product.Name)
		}
	}
	if batch.Best == nil {
		t.Fatal("expected a best result")
	}
	for _, result := range batch.Results {
		if result.FinalBalance > batch.Best.FinalBalance {
			t.Errorf("best = %q (%v) but %q has higher balance %v",
				batch.Best.ProductName, batch.Best.FinalBalance, result.ProductName, result.FinalBalance)
		}
	}
}

func TestProjectAllStableTieBreak(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	// Identical products yield identical balances; the earlier one wins.
	products := []Product{
		{Name: "First", Indexer: rates.IndexerFixed, Rate: 0.10, TaxExempt: true},
		{Name: "Second", Indexer: rates.IndexerFixed, Rate: 0.10, TaxExempt: true},
	}

	batch, err := engine.ProjectAll(products, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("ProjectAll() error = %v", err)
	}
	if batch.Best == nil || batch.Best.ProductName != "First" {
		t.Fatalf("expected tie to resolve to First, got %+v", batch.Best)
	}
}

func TestProjectAllSkipsInvalidProducts(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	products := []Product{
		{Name: "CDB - Prefixada", Indexer: rates.IndexerFixed, Rate: 0.1175},
		{Name: "Broken", Indexer: rates.Indexer("savings"), Rate: 0.05},
		{Name: "LCA - IPCA +", Indexer: rates.IndexerIPCA, Rate: 0.058, TaxExempt: true},
	}

	batch, err := engine.ProjectAll(products, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("ProjectAll() error = %v", err)
	}

	if len(batch.Results) != 2 {
		t.Fatalf("got %d results, expected 2", len(batch.Results))
	}
	if len(batch.Skipped) != 1 {
		t.Fatalf("got %d skipped products, expected 1", len(batch.Skipped))
	}
	if batch.Skipped[0].ProductName != "Broken" {
		t.Errorf("skipped %q, expected Broken", batch.Skipped[0].ProductName)
	}
	var specErr *InvalidProductSpecError
	if !errors.As(batch.Skipped[0].Err, &specErr) {
		t.Errorf("skipped error is %T, expected *InvalidProductSpecError", batch.Skipped[0].Err)
	}
}

func TestProjectAllInvalidPlanFailsFast(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	products := []Product{
		{Name: "CDB", Indexer: rates.IndexerFixed, Rate: 0.1175},
	}
	plan := Plan{InitialDeposit: 1000, MonthlyContribution: 500, HorizonMonths: 0}

	batch, err := engine.ProjectAll(products, plan, referenceScenario)
	if err == nil {
		t.Fatal("expected error for invalid plan, got nil")
	}
	if len(batch.Results) != 0 {
		t.Errorf("expected no results for failed batch, got %d", len(batch.Results))
	}
}

func TestProjectAllEmptyProducts(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	batch, err := engine.ProjectAll(nil, referencePlan, referenceScenario)
	if err != nil {
		t.Fatalf("ProjectAll() error = %v", err)
	}
	if batch.Best != nil {
		t.Errorf("expected no best result for empty product list, got %+v", batch.Best)
	}
}
