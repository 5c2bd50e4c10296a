package cebtree

import "fmt"

// ConfigError reports an invalid element-layout parameter supplied to one
// of the checked New* constructors: a caller-supplied length of zero or
// less can never be a valid fixed-length key.
type ConfigError struct {
	Param string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cebtree: invalid %s: %d", e.Param, e.Value)
}

// NewBytesChecked is [NewBytes], but validates length first. Callers that
// want to distinguish a caller bug from a runtime key mismatch can recover
// it with [github.com/cebtree/cebtree/pkg/xerrors.AsA][*ConfigError].
func NewBytesChecked(kofs uintptr, length int, multi bool) (*Tree[[]byte], error) {
	if length <= 0 {
		return nil, &ConfigError{Param: "length", Value: length}
	}
	return NewBytes(kofs, length, multi), nil
}

// NewIndirectBytesChecked is [NewIndirectBytes], but validates length first.
func NewIndirectBytesChecked(kofs uintptr, length int, multi bool) (*Tree[[]byte], error) {
	if length <= 0 {
		return nil, &ConfigError{Param: "length", Value: length}
	}
	return NewIndirectBytes(kofs, length, multi), nil
}
