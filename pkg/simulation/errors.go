package simulation

import "fmt"

// InvalidProductSpecError reports a product definition that violates its
// domain constraints. The offending product is skipped; other products in
// the same batch still run.
type InvalidProductSpecError struct {
	Product string
	Reason  string
}

func (e *InvalidProductSpecError) Error() string {
	return fmt.Sprintf("invalid product spec %q: %s", e.Product, e.Reason)
}

// InvalidContributionPlanError reports a contribution plan that violates its
// domain constraints. The plan is shared by every product, so the whole
// batch fails fast before any per-product work.
type InvalidContributionPlanError struct {
	Reason string
}

func (e *InvalidContributionPlanError) Error() string {
	return fmt.Sprintf("invalid contribution plan: %s", e.Reason)
}
