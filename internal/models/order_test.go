package models_test

import (
	"encoding/json"
	"testing"

	"lapak/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	// Products not loaded: total must be absent, not zero.
	order := models.Order{ID: 1, CustomerID: 2}
	assert.Nil(t, order.Total())

	// Loaded but empty set: zero, not absent.
	order.Products = []models.Product{}
	total := order.Total()
	assert.NotNil(t, total)
	assert.True(t, total.IsZero())

	// Exact decimal sum: 15.99 + 10.00 = 25.99 with no float drift.
	order.Products = []models.Product{
		{ID: 1, Price: decimal.RequireFromString("15.99")},
		{ID: 3, Price: decimal.RequireFromString("10.00")},
	}
	total = order.Total()
	assert.NotNil(t, total)
	assert.True(t, decimal.RequireFromString("25.99").Equal(*total))
}

func TestOrderMarshalJSON(t *testing.T) {
	order := models.Order{
		ID:          7,
		CustomerID:  2,
		PaymentType: "Visa",
		Shipping:    true,
		Closed:      true,
		Products: []models.Product{
			{ID: 1, Title: "Lamp", Price: decimal.RequireFromString("15.99")},
			{ID: 3, Title: "Mug", Price: decimal.RequireFromString("10.00")},
		},
	}

	body, err := json.Marshal(order)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "25.99", decoded["orderTotal"])
	assert.Equal(t, "Visa", decoded["paymentType"])

	// Without a loaded product set the total serializes as null.
	bare := models.Order{ID: 8, CustomerID: 2}
	body, err = json.Marshal(bare)
	assert.NoError(t, err)
	decoded = nil
	assert.NoError(t, json.Unmarshal(body, &decoded))
	assert.Contains(t, decoded, "orderTotal")
	assert.Nil(t, decoded["orderTotal"])
}
