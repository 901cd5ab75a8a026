package filter

import (
	"fmt"
	"reflect"

	"rentora/internal/core/apperror"
)

var operators = map[ComparisonType]bool{
	Equal: true, NotEqual: true,
	Less: true, LessOrEqual: true, Greater: true, GreaterOrEqual: true,
	InList: true, NotInList: true,
	Contains: true, NotContains: true,
	IsNull: true, IsNotNull: true,
}

// Validate checks items against the allowed columns before any row is read.
// Failures are client errors bound to the "filter" field.
func Validate(items []Item, columns map[string]bool) error {
	for _, item := range items {
		if !columns[item.Field] {
			return apperror.NewFieldValidation("filter", fmt.Sprintf("unknown filter column: %s", item.Field))
		}
		if !operators[item.Operator] {
			return apperror.NewFieldValidation("filter", fmt.Sprintf("unsupported filter operator: %s", item.Operator))
		}
		if item.Operator == InList || item.Operator == NotInList {
			kind := reflect.ValueOf(item.Value).Kind()
			if kind != reflect.Slice && kind != reflect.Array {
				return apperror.NewFieldValidation("filter", fmt.Sprintf("operator %s requires a list value", item.Operator))
			}
		}
	}
	return nil
}
