package model

import "time"

// Product is a catalog entry shown on the products screen.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Category string
	Stock    int
	Status   string
	AddedOn  time.Time
}

// Order is a customer order shown on the orders screen.
type Order struct {
	ID       string
	Customer string
	Total    float64
	Status   string
	Date     time.Time
}

// OrderQuery selects one server-side page of orders.
type OrderQuery struct {
	Search    string
	Status    string
	PageIndex int
	PageSize  int
}

// OrderPage is one page of orders plus the total page count.
type OrderPage struct {
	Orders     []Order
	TotalRows  int
	TotalPages int
}

// Summary holds the headline numbers of the home screen.
type Summary struct {
	Products      int
	OutOfStock    int
	Orders        int
	PendingOrders int
	Revenue       float64
	Slots         int
}
