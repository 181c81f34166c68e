package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineItem(t *testing.T) {
	snapshot := FinancialSnapshot{
		Items: map[string]float64{
			"TotalRevenue": 500,
			"Net Income":   50,
		},
	}

	t.Run("falls through candidate keys", func(t *testing.T) {
		v, ok := snapshot.LineItem(KeysRevenue)
		assert.True(t, ok)
		assert.Equal(t, 500.0, v)
	})

	t.Run("first candidate wins", func(t *testing.T) {
		v, ok := snapshot.LineItem(KeysNetIncome)
		assert.True(t, ok)
		assert.Equal(t, 50.0, v)
	})

	t.Run("total miss", func(t *testing.T) {
		v, ok := snapshot.LineItem(KeysInventory)
		assert.False(t, ok)
		assert.Equal(t, 0.0, v)
	})

	t.Run("nil items map", func(t *testing.T) {
		_, ok := FinancialSnapshot{}.LineItem(KeysRevenue)
		assert.False(t, ok)
	})
}

func TestIsFinancialSector(t *testing.T) {
	tests := []struct {
		name   string
		sector string
		want   bool
	}{
		{name: "bank", sector: "Banks", want: true},
		{name: "financial services", sector: "Financial Services", want: true},
		{name: "insurance", sector: "Insurance - Life", want: true},
		{name: "broker", sector: "Securities Brokerage", want: true},
		{name: "case insensitive", sector: "BANKING", want: true},
		{name: "industrial", sector: "Basic Materials", want: false},
		{name: "empty sector", sector: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinancialSnapshot{Sector: tt.sector}.IsFinancialSector()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActionBearish(t *testing.T) {
	assert.True(t, ActionSell.Bearish())
	assert.True(t, ActionStrongSell.Bearish())
	assert.False(t, ActionNeutral.Bearish())
	assert.False(t, ActionBuy.Bearish())
	assert.False(t, ActionStrongBuy.Bearish())
}
