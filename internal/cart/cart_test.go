package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
)

func drill(maxQuantity int) Item {
	return Item{
		ProductID:   101,
		Name:        "Taladro percutor",
		Slug:        "taladro-percutor",
		UnitPrice:   decimal.NewFromInt(45000),
		MaxQuantity: maxQuantity,
	}
}

func TestAddNewItem(t *testing.T) {
	var c Cart
	capped, err := c.add(drill(5), 2)
	require.NoError(t, err)
	assert.False(t, capped)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddMergesExistingLine(t *testing.T) {
	var c Cart
	_, err := c.add(drill(10), 2)
	require.NoError(t, err)
	_, err = c.add(drill(10), 3)
	require.NoError(t, err)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddClampsAtCapAndSignals(t *testing.T) {
	var c Cart
	_, err := c.add(drill(3), 2)
	require.NoError(t, err)

	capped, err := c.add(drill(3), 5)
	require.NoError(t, err)
	assert.True(t, capped)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddAtCapIsNoOp(t *testing.T) {
	var c Cart
	_, err := c.add(drill(3), 3)
	require.NoError(t, err)

	capped, err := c.add(drill(3), 1)
	require.NoError(t, err)
	assert.True(t, capped)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddUncappedProduct(t *testing.T) {
	var c Cart
	capped, err := c.add(drill(0), 500)
	require.NoError(t, err)
	assert.False(t, capped)
	assert.Equal(t, 500, c.Items[0].Quantity)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	var c Cart
	_, err := c.add(drill(5), 0)
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestSetQuantity(t *testing.T) {
	var c Cart
	_, err := c.add(drill(10), 2)
	require.NoError(t, err)

	require.NoError(t, c.setQuantity(101, 7))
	assert.Equal(t, 7, c.Items[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	var c Cart
	_, err := c.add(drill(10), 2)
	require.NoError(t, err)

	require.NoError(t, c.setQuantity(101, 0))
	assert.True(t, c.Empty())
}

func TestSetQuantityAboveCapRejected(t *testing.T) {
	var c Cart
	_, err := c.add(drill(3), 2)
	require.NoError(t, err)

	err = c.setQuantity(101, 9)
	assert.True(t, errors.Is(err, errors.CodeQuantity))
	assert.Equal(t, 2, c.Items[0].Quantity, "rejected update must not mutate the line")
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	var c Cart
	err := c.setQuantity(999, 1)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestRemove(t *testing.T) {
	var c Cart
	_, err := c.add(drill(10), 2)
	require.NoError(t, err)

	assert.True(t, c.remove(101))
	assert.False(t, c.remove(101))
	assert.True(t, c.Empty())
}

func TestSubtotalAndItemCount(t *testing.T) {
	var c Cart
	_, err := c.add(drill(10), 2)
	require.NoError(t, err)

	saw := Item{ProductID: 202, Name: "Sierra circular", UnitPrice: decimal.NewFromFloat(129990.5), MaxQuantity: 10}
	_, err = c.add(saw, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, c.ItemCount())
	assert.True(t, c.Subtotal().Equal(decimal.NewFromFloat(219990.5)),
		"subtotal was %s", c.Subtotal())
}

func TestEmptyCartTotals(t *testing.T) {
	var c Cart
	assert.Zero(t, c.ItemCount())
	assert.True(t, c.Subtotal().IsZero())
}
