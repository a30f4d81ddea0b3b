package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMenuItem(t *testing.T) {
	price := decimal.NewFromInt(20)
	zero := decimal.Zero
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name    string
		fields  MenuItemFields
		wantErr string
	}{
		{"valid", MenuItemFields{Name: "汤", Price: &price, Category: "汤品"}, ""},
		{"free dish", MenuItemFields{Name: "茶", Price: &zero, Category: "饮品"}, ""},
		{"missing name", MenuItemFields{Name: "  ", Price: &price, Category: "汤品"}, "name"},
		{"missing price", MenuItemFields{Name: "汤", Category: "汤品"}, "price"},
		{"negative price", MenuItemFields{Name: "汤", Price: &negative, Category: "汤品"}, "price"},
		{"missing category", MenuItemFields{Name: "汤", Price: &price}, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewMenuItem("dish-007", tt.fields)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.True(t, item.Available)
				assert.Equal(t, "dish-007", item.ID)
				return
			}

			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestMenuItemApplyDoesNotAlias(t *testing.T) {
	item := MenuItem{ID: "dish-001", Name: "宫保鸡丁", Price: decimal.NewFromInt(48), Category: "热菜", Tags: []string{"川菜"}, Available: true}

	newPrice := decimal.NewFromInt(50)
	off := false
	updated := item.Apply(MenuItemPatch{Price: &newPrice, Available: &off})

	assert.True(t, decimal.NewFromInt(48).Equal(item.Price))
	assert.True(t, item.Available)
	assert.True(t, newPrice.Equal(updated.Price))
	assert.False(t, updated.Available)

	updated.Tags[0] = "changed"
	assert.Equal(t, "川菜", item.Tags[0])
}

func TestMenuItemJSONPriceIsNumber(t *testing.T) {
	item := MenuItem{ID: "dish-001", Name: "宫保鸡丁", Price: decimal.RequireFromString("48.5"), Category: "热菜", Available: true}

	data, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":48.5`)

	var back MenuItem
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, item.Price.Equal(back.Price))
}

func TestValidTableNumber(t *testing.T) {
	assert.True(t, ValidTableNumber("T101"))
	assert.True(t, ValidTableNumber("T1"))
	assert.False(t, ValidTableNumber("T"))
	assert.False(t, ValidTableNumber("t101"))
	assert.False(t, ValidTableNumber("T10a"))
	assert.False(t, ValidTableNumber(" T101"))
}
