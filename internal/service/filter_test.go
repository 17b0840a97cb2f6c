package service

import (
	"testing"
	"time"

	"github.com/asquebay/order-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderAt(id, ts string) model.Order {
	return model.Order{ID: id, ClientID: "c1", VendorID: "v1", OrderedAt: at(ts), TotalPrice: price(10)}
}

func ids(orders []model.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-03-01", "2024-03-05", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, 999_000_000, time.UTC), r.To)
}

func TestParseDateRange_EmptyBoundsAreUnbounded(t *testing.T) {
	r, err := ParseDateRange("", "  ", time.UTC)
	require.NoError(t, err)

	assert.True(t, r.From.IsZero())
	assert.True(t, r.To.IsZero())
	assert.True(t, r.Contains(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2999, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRange_Invalid(t *testing.T) {
	_, err := ParseDateRange("05/03/2024", "", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestFilterByDateRange_InclusiveEndOfDay(t *testing.T) {
	orders := []model.Order{
		orderAt("before", "2024-02-29T23:59:59"),
		orderAt("start", "2024-03-01T00:00:00"),
		orderAt("late", "2024-03-05T23:59:59.5"),
		orderAt("after", "2024-03-06T00:00:00"),
	}

	r, err := ParseDateRange("2024-03-01", "2024-03-05", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "late"}, ids(FilterByDateRange(orders, r)))
}

func TestFilterByDateRange_SameDayRange(t *testing.T) {
	orders := []model.Order{orderAt("o1", "2024-03-05T18:30:00")}

	r, err := ParseDateRange("2024-03-05", "2024-03-05", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []string{"o1"}, ids(FilterByDateRange(orders, r)))
}

func TestFilterByCategory(t *testing.T) {
	a := model.Order{ID: "a", ClientID: "c1", VendorID: "v1", MaterialIDs: []string{"m1", "m1"}}
	b := model.Order{ID: "b", ClientID: "c2", VendorID: "v1", MaterialIDs: []string{"m2"}}
	c := model.Order{ID: "c", ClientID: "c1", VendorID: "v2", MaterialIDs: nil}
	orders := []model.Order{a, b, c}

	tests := []struct {
		name     string
		category Category
		value    string
		want     []string
	}{
		{name: "client", category: CategoryClient, value: "c1", want: []string{"a", "c"}},
		{name: "vendor", category: CategoryVendor, value: "v1", want: []string{"a", "b"}},
		{name: "material", category: CategoryMaterial, value: "m1", want: []string{"a"}},
		{name: "no match", category: CategoryClient, value: "c9", want: []string{}},
		{name: "empty value passes through", category: CategoryClient, value: "", want: []string{"a", "b", "c"}},
		{name: "none passes through", category: CategoryNone, value: "c1", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByCategory(orders, tt.category, tt.value)))
		})
	}
}

func TestApplyFilters_DateThenCategory(t *testing.T) {
	old := orderAt("old", "2023-01-10T10:00:00")
	recent := orderAt("recent", "2024-03-02T10:00:00")
	other := orderAt("other", "2024-03-03T10:00:00")
	other.ClientID = "c2"

	r, err := ParseDateRange("2024-01-01", "", time.UTC)
	require.NoError(t, err)

	got := ApplyFilters([]model.Order{old, recent, other}, r, CategoryClient, "c1")
	assert.Equal(t, []string{"recent"}, ids(got))
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"":         CategoryNone,
		"none":     CategoryNone,
		"client":   CategoryClient,
		"actif":    CategoryVendor,
		"vendor":   CategoryVendor,
		"materiel": CategoryMaterial,
		"Material": CategoryMaterial,
	} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("groupe")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
