// Package testutil provides common utility functions for testing.
package testutil

import (
	"rendafixa-simulator/pkg/simulation"
)

// FindResult finds a product result by name in the batch.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(batch simulation.Batch, name string) *simulation.Result {
	for i := range batch.Results {
		if batch.Results[i].ProductName == name {
			return &batch.Results[i]
		}
	}
	return nil
}
