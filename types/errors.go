package types

import "fmt"

// DomainError reports a correlation or record input outside its valid range
type DomainError struct {
	Correlation string // Empty when raised by record validation
	Quantity    string
	Value       float64
	Limit       string
}

func (e *DomainError) Error() string {
	if len(e.Correlation) == 0 {
		return fmt.Sprintf("%s = %g is out of range, require %s", e.Quantity, e.Value, e.Limit)
	}
	return fmt.Sprintf("%s: %s = %g is out of range, require %s", e.Correlation, e.Quantity, e.Value, e.Limit)
}

// InCorrelation tags a validation error with the correlation that rejected it
func InCorrelation(err error, name string) error {
	if de, ok := err.(*DomainError); ok {
		cp := *de
		cp.Correlation = name
		return &cp
	}
	return err
}
