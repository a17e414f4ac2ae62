package repository_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("ListProducts", func(t *testing.T) {
		repos, _ := setupRepos(t, map[string]string{
			"GET /api/database/rows/table/12/": `{"count":2,"next":null,"results":[
				{"id":1,"name":"Latte","price":"35000.00","discount_price":"30000.00","category":{"id":3,"value":"coffee"},"is_available":true},
				{"id":2,"name":"Croissant","price":"45000","discount_price":null,"category":"bakery","is_available":false}]}`,
		})

		products, err := repos.Products.ListProducts(ctx)

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "coffee", products[0].Category)
		assert.True(t, decimal.NewFromInt(30000).Equal(products[0].EffectivePrice()))
		assert.True(t, decimal.NewFromInt(45000).Equal(products[1].EffectivePrice()))
		assert.False(t, products[1].IsAvailable)
	})

	t.Run("GetProductByID_NotFound", func(t *testing.T) {
		repos, _ := setupRepos(t, map[string]string{})

		product, err := repos.Products.GetProductByID(ctx, 99)

		assert.Nil(t, product)
		assert.True(t, tablestore.IsNotFound(err))
	})
}
