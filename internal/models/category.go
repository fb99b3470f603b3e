package models

// Category is one of the fixed set of loggable actions. The raw value is the
// keyboard label shown to the user and the value persisted in the log, so the
// constants must match the button text byte for byte.
type Category string

const (
	CategoryTaxi         Category = "🚕 Taxi"
	CategoryFoodDelivery Category = "🍔 Food Delivery"
	CategoryNoSpending   Category = "🙌 No Spending Today"
)

// categoryInfo carries the static scoring data for a known category.
type categoryInfo struct {
	weight int
	lazy   bool
}

var categoryTable = map[Category]categoryInfo{
	CategoryTaxi:         {weight: 1, lazy: true},
	CategoryFoodDelivery: {weight: 2, lazy: true},
	CategoryNoSpending:   {weight: -3, lazy: false},
}

// Categories returns all known categories in keyboard order.
func Categories() []Category {
	return []Category{CategoryTaxi, CategoryFoodDelivery, CategoryNoSpending}
}

// Known reports whether the category is part of the closed set.
func (c Category) Known() bool {
	_, ok := categoryTable[c]
	return ok
}

// Weight returns the signed score contribution of one event in this category.
// Unknown categories contribute 0; they are still recorded.
func (c Category) Weight() int {
	return categoryTable[c].weight
}

// Lazy reports whether the category counts as lazy spending.
func (c Category) Lazy() bool {
	return categoryTable[c].lazy
}
