package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitrinalabs/storefront-backend/pkg/errors"
)

// Item is one cart line. MaxQuantity mirrors the per-product stock cap from
// the catalog; zero or negative means uncapped.
type Item struct {
	ProductID   int             `json:"productId" validate:"required,gt=0"`
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug"`
	Image       string          `json:"image"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	MaxQuantity int             `json:"maxQuantity"`
	Quantity    int             `json:"quantity"`
}

// LineTotal is the item's quantity-extended price.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i Item) capped() bool {
	return i.MaxQuantity > 0 && i.Quantity >= i.MaxQuantity
}

// Cart is a session's order ledger. Lines keep insertion order so the cart
// renders stably across mutations.
type Cart struct {
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

// ItemCount is the total unit count across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums the quantity-extended prices of every line.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) find(productID int) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// add merges the item into the ledger, clamping the merged quantity at the
// product's cap. It reports whether the cap truncated the request; adding to
// an already-capped line leaves the cart unchanged.
func (c *Cart) add(item Item, quantity int) (bool, error) {
	if quantity < 1 {
		return false, errors.New(errors.CodeValidation, "quantity must be at least 1")
	}

	existing := c.find(item.ProductID)
	if existing == nil {
		item.Quantity = quantity
		capped := false
		if item.MaxQuantity > 0 && item.Quantity > item.MaxQuantity {
			item.Quantity = item.MaxQuantity
			capped = true
		}
		c.Items = append(c.Items, item)
		c.UpdatedAt = time.Now().UTC()
		return capped, nil
	}

	if existing.capped() {
		return true, nil
	}
	existing.Quantity += quantity
	capped := false
	if existing.MaxQuantity > 0 && existing.Quantity > existing.MaxQuantity {
		existing.Quantity = existing.MaxQuantity
		capped = true
	}
	c.UpdatedAt = time.Now().UTC()
	return capped, nil
}

// setQuantity replaces a line's quantity. Zero or negative removes the line;
// a quantity above the cap is rejected without mutating the cart.
func (c *Cart) setQuantity(productID, quantity int) error {
	existing := c.find(productID)
	if existing == nil {
		return errors.New(errors.CodeNotFound, "product is not in the cart")
	}
	if quantity < 1 {
		c.remove(productID)
		return nil
	}
	if existing.MaxQuantity > 0 && quantity > existing.MaxQuantity {
		return errors.New(errors.CodeQuantity, "quantity exceeds the product maximum").
			WithDetails(map[string]int{"maxQuantity": existing.MaxQuantity})
	}
	existing.Quantity = quantity
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (c *Cart) remove(productID int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}
