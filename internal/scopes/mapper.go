// Package scopes reclassifies lifecycle carbon into GHG Protocol
// Scope 1/2/3 buckets.
package scopes

import "carbonconstruct/calculator-backend/internal/lca"

// DirectOperational carries externally computed operational emissions
// (kg CO2-e): on-site fuel combustion and purchased electricity. It is
// produced by an operational-carbon tracker outside this engine.
type DirectOperational struct {
	Scope1 float64 `json:"scope1"`
	Scope2 float64 `json:"scope2"`
}

// Result holds the scope buckets. Partial is set when no operational data
// was supplied: "no data" and "verified zero" are different claims and must
// never be conflated.
type Result struct {
	Scope1  float64 `json:"scope1"`
	Scope2  float64 `json:"scope2"`
	Scope3  float64 `json:"scope3"`
	Total   float64 `json:"total"`
	Partial bool    `json:"partial"`
}

// Map applies the fixed stage-to-scope convention: for a builder or
// developer, all material-embodied carbon is value-chain (Scope 3,
// purchased goods); supplied operational emissions land in scopes 1 and 2.
// The mapping is a domain convention and is reproduced exactly.
func Map(lcaResult *lca.Result, operational *DirectOperational) *Result {
	result := &Result{
		Scope3: lcaResult.TotalEmbodiedCarbon,
	}

	if operational != nil {
		result.Scope1 = operational.Scope1
		result.Scope2 = operational.Scope2
	} else {
		result.Partial = true
	}

	result.Total = result.Scope1 + result.Scope2 + result.Scope3
	return result
}
