package domain

import "time"

// Basket represents a user's shopping basket.
type Basket struct {
	UserID    string       `json:"user_id"`
	Items     []BasketItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// BasketItem represents a single product entry in the basket.
type BasketItem struct {
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// Contains reports whether the basket already holds the given product.
func (b *Basket) Contains(productID string) bool {
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// RemoveItem deletes the given product from the basket. It reports whether
// the product was present.
func (b *Basket) RemoveItem(productID string) bool {
	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			return true
		}
	}
	return false
}
