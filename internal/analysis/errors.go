package analysis

import "fmt"

// InvalidInputError reports a construction or argument value that the model
// rejects outright: negative prices, costs, quantities or fixed costs, or a
// discount outside [0, 100].
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a by-name lookup that matched no product.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Name)
}

func invalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
