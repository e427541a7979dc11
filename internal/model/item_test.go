package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestItemUpdate_ApplyTo(t *testing.T) {
	base := func() Item {
		return Item{ID: 1, Name: "Widget", Description: strPtr("A widget"), Price: floatPtr(9.99)}
	}

	tests := []struct {
		name     string
		update   ItemUpdate
		expected Item
	}{
		{
			name:     "Empty update keeps everything",
			update:   ItemUpdate{},
			expected: base(),
		},
		{
			name:     "Name only",
			update:   ItemUpdate{Name: strPtr("Widget2")},
			expected: Item{ID: 1, Name: "Widget2", Description: strPtr("A widget"), Price: floatPtr(9.99)},
		},
		{
			name:     "Description and price",
			update:   ItemUpdate{Description: strPtr("Bigger"), Price: floatPtr(12.5)},
			expected: Item{ID: 1, Name: "Widget", Description: strPtr("Bigger"), Price: floatPtr(12.5)},
		},
		{
			name:     "Zero price replaces",
			update:   ItemUpdate{Price: floatPtr(0)},
			expected: Item{ID: 1, Name: "Widget", Description: strPtr("A widget"), Price: floatPtr(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := base()
			tt.update.ApplyTo(&item)
			assert.Equal(t, tt.expected, item)
		})
	}
}

func TestItemUpdate_NullDecodesAsAbsent(t *testing.T) {
	var update ItemUpdate
	err := json.Unmarshal([]byte(`{"description": null, "price": null}`), &update)
	require.NoError(t, err)

	item := Item{ID: 3, Name: "Lamp", Description: strPtr("Desk lamp"), Price: floatPtr(20)}
	update.ApplyTo(&item)

	assert.Equal(t, "Desk lamp", *item.Description)
	assert.Equal(t, 20.0, *item.Price)
}

func TestItem_JSONShape(t *testing.T) {
	data, err := json.Marshal(Item{ID: 7, Name: "Bare"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Bare","description":null,"price":null}`, string(data))
}
