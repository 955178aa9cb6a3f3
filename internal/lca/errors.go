package lca

import "fmt"

// MaterialNotFoundError reports a bill-of-materials line whose material id
// did not resolve. The line is never silently skipped: a dropped material
// would understate carbon.
type MaterialNotFoundError struct {
	MaterialID string
	Line       int
}

func (e *MaterialNotFoundError) Error() string {
	return fmt.Sprintf("material %q not found (bill of materials line %d)", e.MaterialID, e.Line)
}

// InvalidQuantityError reports a negative quantity.
type InvalidQuantityError struct {
	MaterialID string
	Line       int
	Quantity   float64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %g for material %q (bill of materials line %d): quantity must be >= 0",
		e.Quantity, e.MaterialID, e.Line)
}

// InvalidMetadataError reports unusable project metadata.
type InvalidMetadataError struct {
	Reason string
}

func (e *InvalidMetadataError) Error() string {
	return fmt.Sprintf("invalid project metadata: %s", e.Reason)
}
