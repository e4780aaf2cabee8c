package model

import "dashdeck/internal/schedule"

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// ProductsLoadedMsg is sent when products are loaded.
type ProductsLoadedMsg struct {
	Category string
	Products []Product
}

// CategoriesLoadedMsg carries the department filter options.
type CategoriesLoadedMsg struct {
	Categories []string
}

// OrdersLoadedMsg is sent when a page of orders is loaded.
type OrdersLoadedMsg struct {
	Seq   int
	Query OrderQuery
	Page  OrderPage
}

// OrderStatusesLoadedMsg carries the status filter options.
type OrderStatusesLoadedMsg struct {
	Statuses []string
}

// SummaryLoadedMsg is sent when the home screen numbers are loaded.
type SummaryLoadedMsg struct {
	Summary Summary
}

// SlotsLoadedMsg is sent when the saved schedule is loaded.
type SlotsLoadedMsg struct {
	Slots []schedule.Slot
}

// SlotsSavedMsg is sent after the schedule was written.
type SlotsSavedMsg struct {
	Label  string
	Before []schedule.Slot
	After  []schedule.Slot
}

// Screen represents different app screens.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenProducts
	ScreenOrders
	ScreenSchedule
	ScreenProductDetail
	ScreenOrderDetail
)

// Title returns the sidebar and breadcrumb label.
func (s Screen) Title() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenProducts, ScreenProductDetail:
		return "Products"
	case ScreenOrders, ScreenOrderDetail:
		return "Orders"
	case ScreenSchedule:
		return "Schedule"
	default:
		return ""
	}
}
