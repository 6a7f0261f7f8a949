package cartitem

// Quantity bounds for a single line item.
const (
	MinQuantity = 1
	MaxQuantity = 50
)

// CartItem is one (product, quantity) pair in a cart. It is transient input:
// never stored on its own, only embedded inside an order.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
