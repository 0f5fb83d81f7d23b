package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/pharmacy/storefront/pkg/response"
)

var (
	doliprane = response.Product{ID: "a", Name: "Doliprane", Price: decimal.RequireFromString("10.00")}
	sirop     = response.Product{ID: "b", Name: "Sirop", Price: decimal.RequireFromString("5.50")}
	creme     = response.Product{ID: "c", Name: "Crème", Price: decimal.RequireFromString("7.25")}
)

func TestAddSameProductTwice(t *testing.T) {
	cart := New()
	cart.Add(doliprane)
	cart.Add(doliprane)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, cart.Count())
}

func TestTotal(t *testing.T) {
	cart := New()
	assert.True(t, cart.Total().IsZero())

	cart.Add(doliprane)
	cart.Add(doliprane)
	cart.Add(sirop)
	assert.Equal(t, "25.50", cart.Total().StringFixed(2))
	assert.True(t, decimal.RequireFromString("25.5").Equal(cart.Total()))
}

func TestInsertionOrder(t *testing.T) {
	cart := New()
	cart.Add(sirop)
	cart.Add(doliprane)
	cart.Add(creme)
	cart.Add(sirop)

	ids := []string{}
	for _, item := range cart.Items() {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids)
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name          string
		productID     string
		quantity      int
		expectedLen   int
		expectedTotal string
	}{
		{name: "absolute quantity", productID: "a", quantity: 5, expectedLen: 2, expectedTotal: "55.50"},
		{name: "zero removes", productID: "a", quantity: 0, expectedLen: 1, expectedTotal: "5.50"},
		{name: "negative removes", productID: "b", quantity: -1, expectedLen: 1, expectedTotal: "10.00"},
		{name: "unknown id is a no-op", productID: "z", quantity: 3, expectedLen: 2, expectedTotal: "15.50"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cart := New()
			cart.Add(doliprane)
			cart.Add(sirop)

			cart.UpdateQuantity(test.productID, test.quantity)
			assert.Equal(t, test.expectedLen, cart.Len())
			assert.Equal(t, test.expectedTotal, cart.Total().StringFixed(2))
		})
	}
}

func TestRemove(t *testing.T) {
	cart := New()
	cart.Add(doliprane)
	cart.Add(sirop)
	cart.Add(creme)

	cart.Remove("b")
	cart.Remove("missing")
	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "c", items[1].ID)
}

func TestItemsIsACopy(t *testing.T) {
	cart := New()
	cart.Add(doliprane)

	items := cart.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestOrderItemsAndClear(t *testing.T) {
	cart := New()
	cart.Add(doliprane)
	cart.Add(doliprane)
	cart.Add(sirop)

	items := cart.OrderItems()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ProductID)
	assert.Equal(t, "Doliprane", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, doliprane.Price.Equal(items[0].Price))

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	assert.Empty(t, cart.Items())
	assert.True(t, cart.Total().IsZero())
}
