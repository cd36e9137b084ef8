// Package policy holds the access predicates applied to request callers.
package policy

import "library-catalog/pkg/utils"

// Predicate decides whether a caller may use a protected operation
type Predicate func(caller utils.Caller) bool

// IsActiveStaff grants access to active staff accounts only
func IsActiveStaff(caller utils.Caller) bool {
	return caller.IsActive && caller.IsStaff
}
