package custody

import (
	"errors"
	"fmt"
)

// NotOwnerError is returned when the transfer sender does not own the item.
type NotOwnerError struct {
	Collection string
	ItemID     uint64
	Owner      string
}

func (e *NotOwnerError) Error() string {
	return fmt.Sprintf("item %d of collection %s is not owned by the sender", e.ItemID, e.Collection)
}

func IsNotOwnerError(err error) bool {
	var target *NotOwnerError
	return errors.As(err, &target)
}

// UnknownItemError is returned when the item has never been registered.
type UnknownItemError struct {
	Collection string
	ItemID     uint64
}

func (e *UnknownItemError) Error() string {
	return fmt.Sprintf("item %d of collection %s is not registered", e.ItemID, e.Collection)
}

func IsUnknownItemError(err error) bool {
	var target *UnknownItemError
	return errors.As(err, &target)
}
