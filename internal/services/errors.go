package services

import "fmt"

// InsufficientStockError rejects an invoice submission whose requested
// quantity exceeds the available stock for a product, or that references a
// product no longer in the catalog (ProductName is "Unknown" then).
// Nothing is written when this error is returned.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
}
