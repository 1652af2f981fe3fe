package store

import "github.com/xy-planning-network/storefront/catalog"

const (
	AddItem    ActionType = "ADD_ITEM"
	RemoveItem ActionType = "REMOVE_ITEM"
	Load       ActionType = "LOAD"
	Clear      ActionType = "CLEAR"
)

// A CartItem is a product in the cart.
type CartItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
	Selected bool   `json:"selected"`
}

// CartState is the cart's contents.
type CartState struct {
	Items       []CartItem `json:"items"`
	SelectedAll bool       `json:"selectedAll"`
}

// A CartAdd is the payload of an AddItem Action.
// A Quantity under one adds one.
type CartAdd struct {
	Product  catalog.Product
	Quantity int
}

// CartStore holds CartState.
type CartStore = Store[CartState]

// NewCartStore constructs a *CartStore with an empty cart.
func NewCartStore() *CartStore {
	return New(CartState{Items: []CartItem{}}, reduceCart)
}

func reduceCart(s CartState, a Action) CartState {
	switch a.Type {
	case AddItem:
		add, ok := a.Payload.(CartAdd)
		if !ok {
			return s
		}

		qty := max(1, add.Quantity)
		items := make([]CartItem, 0, len(s.Items)+1)
		found := false
		for _, it := range s.Items {
			if it.ID == add.Product.ProductID {
				it.Quantity += qty
				found = true
			}
			items = append(items, it)
		}

		if !found {
			items = append(items, CartItem{
				ID:       add.Product.ProductID,
				Title:    add.Product.Title,
				Image:    add.Product.Image,
				Price:    add.Product.LPrice,
				Quantity: qty,
			})
		}

		s.Items = items

	case RemoveItem:
		id, ok := a.Payload.(string)
		if !ok {
			return s
		}

		items := make([]CartItem, 0, len(s.Items))
		for _, it := range s.Items {
			if it.ID != id {
				items = append(items, it)
			}
		}
		s.Items = items

	case Load:
		next, ok := a.Payload.(CartState)
		if !ok {
			return s
		}

		if next.Items == nil {
			next.Items = []CartItem{}
		}
		return next

	case Clear:
		return CartState{Items: []CartItem{}}
	}

	return s
}
