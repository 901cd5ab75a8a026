// Package filter describes storage-independent query conditions.
// Conditions are pushed down to SQL by the PostgreSQL store and evaluated
// against row snapshots by the in-memory store.
package filter

// ComparisonType is a condition operator.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	Less           ComparisonType = "lt"
	LessOrEqual    ComparisonType = "lte"
	Greater        ComparisonType = "gt"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Contains       ComparisonType = "contains"  // case-insensitive substring
	NotContains    ComparisonType = "ncontains" // negated Contains
	IsNull         ComparisonType = "null"
	IsNotNull      ComparisonType = "not_null"
)

// Item is a single condition on a column (snake_case db name).
type Item struct {
	Field    string         `json:"field"`
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Eq builds an equality condition.
func Eq(field string, value any) Item {
	return Item{Field: field, Operator: Equal, Value: value}
}

// Neq builds an inequality condition.
func Neq(field string, value any) Item {
	return Item{Field: field, Operator: NotEqual, Value: value}
}
