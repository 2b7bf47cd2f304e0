package rewardtoken

import (
	"errors"
	"fmt"
)

// InsufficientFundsError is returned when the funding account cannot cover a
// transfer.
type InsufficientFundsError struct {
	Requested string
	Available string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient reward funds: requested %s, available %s", e.Requested, e.Available)
}

func IsInsufficientFundsError(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}
