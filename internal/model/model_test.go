package model

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-03-10T09:30:00Z", want: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)},
		{in: "2024-03-10T09:30:00+02:00", want: time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)},
		{in: "2024-03-10T09:30:00", want: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)},
		{in: "2024-03-10 09:30:00", want: time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)},
		{in: "2024-03-10", want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	_, err := ParseTimestamp("10/03/2024")
	assert.Error(t, err)
}

func TestOrder_UnmarshalAndValidate(t *testing.T) {
	var order Order
	err := json.Unmarshal([]byte(`{"id":"o1","idClient":"c1","idVendeur":"v1","dateCommande":"2024-03-10T09:00:00","prixTotal":"150.00","numerosSerie":["m1","m2","m1"]}`), &order)
	require.NoError(t, err)
	require.NoError(t, order.Validate())

	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, order.HasMaterial("m2"))
	assert.False(t, order.HasMaterial("m3"))

	ids, counts := order.MaterialQuantities()
	assert.Equal(t, []string{"m1", "m2"}, ids)
	assert.Equal(t, map[string]int{"m1": 2, "m2": 1}, counts)
}

func TestOrder_ValidateRejects(t *testing.T) {
	valid := Order{
		ID:          "o1",
		ClientID:    "c1",
		VendorID:    "v1",
		OrderedAt:   NewTimestamp(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
		TotalPrice:  decimal.NewFromInt(10),
		MaterialIDs: []string{"m1"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(o *Order)
	}{
		{name: "missing client", mutate: func(o *Order) { o.ClientID = "" }},
		{name: "missing date", mutate: func(o *Order) { o.OrderedAt = Timestamp{} }},
		{name: "negative total", mutate: func(o *Order) { o.TotalPrice = decimal.NewFromInt(-1) }},
		{name: "empty material id", mutate: func(o *Order) { o.MaterialIDs = []string{"m1", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			assert.Error(t, o.Validate())
		})
	}
}

func TestUnknownSentinels(t *testing.T) {
	m := UnknownMember("c9")
	assert.Equal(t, "c9", m.ID)
	assert.Equal(t, "Inconnu Inconnu", m.FullName())

	mat := UnknownMaterial("m9")
	assert.Equal(t, "INCONNU", mat.Type)
	assert.True(t, mat.Price.IsZero())
}

func TestSearchQuery_Validate(t *testing.T) {
	assert.NoError(t, (&SearchQuery{}).Validate())
	assert.NoError(t, (&SearchQuery{Start: "2024-03-01", Category: "actif", Value: "v1"}).Validate())
	assert.Error(t, (&SearchQuery{Start: "01/03/2024"}).Validate())
	assert.Error(t, (&SearchQuery{Category: "admin"}).Validate())
}

func TestOrdersChanged_Validate(t *testing.T) {
	assert.NoError(t, (&OrdersChanged{Source: "backoffice", ChangedAt: time.Now()}).Validate())
	assert.Error(t, (&OrdersChanged{ChangedAt: time.Now()}).Validate())
	assert.Error(t, (&OrdersChanged{Source: "backoffice"}).Validate())
}

func TestTimestamp_InKeepsWallClockForZonelessValues(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	zoneless, err := ParseTimestamp("2024-03-31T23:30:00")
	require.NoError(t, err)
	assert.True(t, zoneless.Floating())
	assert.Equal(t, time.Date(2024, 3, 31, 23, 30, 0, 0, paris), zoneless.In(paris))

	utc, err := ParseTimestamp("2024-03-31T23:30:00Z")
	require.NoError(t, err)
	assert.False(t, utc.Floating())
	assert.Equal(t, "2024-04-01 01:30", utc.In(paris).Format("2006-01-02 15:04"))
}

func TestTimestamp_MarshalKeepsZonelessFormat(t *testing.T) {
	zoneless, err := ParseTimestamp("2024-03-31T23:30:00")
	require.NoError(t, err)

	data, err := json.Marshal(zoneless)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-31T23:30:00"`, string(data))

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, zoneless, back)
}
