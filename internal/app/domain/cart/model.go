package cart

import "time"

// Item is one line of a cart. Name, Price, and Image are copies taken from
// the product at the moment it was added; they deliberately do not track the
// live catalog, so the price a shopper saw is the price they check out with.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is the per-user working set of selected products. Items keep insertion
// order and hold at most one line per product id.
type Cart struct {
	UserID    int       `json:"userId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Total is the sum of price times quantity over all lines. Zero for an empty
// cart.
func (c Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (c Cart) ItemCount() int {
	var count int
	for _, it := range c.Items {
		count += it.Quantity
	}
	return count
}

// Find returns the index of the line holding productID, or -1.
func (c Cart) Find(productID int) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
