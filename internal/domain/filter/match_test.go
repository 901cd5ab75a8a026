package filter

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_Operators(t *testing.T) {
	cityID := uuid.MustParse("0190a5b4-1c2d-7e3f-8a9b-0c1d2e3f4a5b")
	start := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)
	zip := "12345"

	row := map[string]any{
		"id":         cityID,
		"name":       "Springfield",
		"price":      decimal.RequireFromString("120.50"),
		"start_date": start,
		"zip_code":   &zip,
		"province":   (*string)(nil),
		"is_deleted": false,
	}

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"eq string", Eq("name", "Springfield"), true},
		{"eq string miss", Eq("name", "Shelbyville"), false},
		{"eq uuid", Eq("id", cityID), true},
		{"eq uuid as string", Eq("id", cityID.String()), true},
		{"neq", Neq("name", "Shelbyville"), true},
		{"eq bool", Eq("is_deleted", false), true},
		{"eq pointer deref", Eq("zip_code", "12345"), true},
		{"decimal gt number", Item{Field: "price", Operator: Greater, Value: 100}, true},
		{"decimal eq different scale", Eq("price", decimal.RequireFromString("120.5")), true},
		{"decimal lte string", Item{Field: "price", Operator: LessOrEqual, Value: "120.50"}, true},
		{"time lt", Item{Field: "start_date", Operator: Less, Value: start.Add(time.Hour)}, true},
		{"time gte rfc3339", Item{Field: "start_date", Operator: GreaterOrEqual, Value: "2031-05-01T00:00:00Z"}, true},
		{"in", Item{Field: "name", Operator: InList, Value: []any{"A", "Springfield"}}, true},
		{"nin", Item{Field: "name", Operator: NotInList, Value: []string{"A", "B"}}, true},
		{"contains case-insensitive", Item{Field: "name", Operator: Contains, Value: "SPRING"}, true},
		{"ncontains", Item{Field: "name", Operator: NotContains, Value: "spring"}, false},
		{"null", Item{Field: "province", Operator: IsNull}, true},
		{"not null", Item{Field: "zip_code", Operator: IsNotNull}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(row, []Item{tt.item})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_AllItemsMustHold(t *testing.T) {
	row := map[string]any{"name": "Springfield", "country": "US"}

	got, err := Match(row, []Item{Eq("name", "Springfield"), Eq("country", "CA")})
	require.NoError(t, err)
	assert.False(t, got)

	got, err = Match(row, nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestMatch_Errors(t *testing.T) {
	row := map[string]any{"name": "x"}

	_, err := Match(row, []Item{Eq("unknown", 1)})
	assert.Error(t, err)

	_, err = Match(row, []Item{{Field: "name", Operator: "between", Value: 1}})
	assert.Error(t, err)

	_, err = Match(row, []Item{{Field: "name", Operator: InList, Value: "x"}})
	assert.Error(t, err)
}
