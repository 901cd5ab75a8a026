package filter

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Match evaluates all items (AND) against a row snapshot keyed by column name.
func Match(row map[string]any, items []Item) (bool, error) {
	for _, item := range items {
		actual, ok := row[item.Field]
		if !ok {
			return false, fmt.Errorf("invalid filter column: %s", item.Field)
		}
		matched, err := matchItem(normalize(actual), item)
		if err != nil {
			return false, err
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func matchItem(actual any, item Item) (bool, error) {
	switch item.Operator {
	case Equal:
		return equal(actual, normalize(item.Value)), nil
	case NotEqual:
		return !equal(actual, normalize(item.Value)), nil
	case Less, LessOrEqual, Greater, GreaterOrEqual:
		c, ok := compare(actual, normalize(item.Value))
		if !ok {
			return false, nil
		}
		switch item.Operator {
		case Less:
			return c < 0, nil
		case LessOrEqual:
			return c <= 0, nil
		case Greater:
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case InList, NotInList:
		found, err := inList(actual, item.Value)
		if err != nil {
			return false, err
		}
		if item.Operator == NotInList {
			return !found, nil
		}
		return found, nil
	case Contains, NotContains:
		if actual == nil {
			return item.Operator == NotContains, nil
		}
		hit := strings.Contains(strings.ToLower(fmt.Sprint(actual)), strings.ToLower(fmt.Sprint(item.Value)))
		if item.Operator == NotContains {
			return !hit, nil
		}
		return hit, nil
	case IsNull:
		return actual == nil, nil
	case IsNotNull:
		return actual != nil, nil
	default:
		return false, fmt.Errorf("unsupported filter operator: %s", item.Operator)
	}
}

func inList(actual any, list any) (bool, error) {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false, fmt.Errorf("operator requires a list value, got %T", list)
	}
	for i := 0; i < rv.Len(); i++ {
		if equal(actual, normalize(rv.Index(i).Interface())) {
			return true, nil
		}
	}
	return false, nil
}

// normalize dereferences pointers and maps ids and numbers onto comparable forms.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}

	switch t := v.(type) {
	case uuid.UUID:
		return t.String()
	case decimal.Decimal:
		return t
	case int:
		return decimal.NewFromInt(int64(t))
	case int32:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case float32:
		return decimal.NewFromFloat32(t)
	case float64:
		return decimal.NewFromFloat(t)
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if c, ok := compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two normalized values; ok is false when they are not comparable.
func compare(a, b any) (int, bool) {
	switch av := a.(type) {
	case decimal.Decimal:
		bv, ok := asDecimal(b)
		if !ok {
			return 0, false
		}
		return av.Cmp(bv), true
	case time.Time:
		bv, ok := asTime(b)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok || av != bv {
			return 1, ok
		}
		return 0, true
	}
	return 0, false
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case string:
		d, err := decimal.NewFromString(t)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}
