package models

import "gorm.io/datatypes"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCooking   OrderStatus = "Cooking"
	OrderCooked    OrderStatus = "Cooked"
	OrderPickedUp  OrderStatus = "PickedUp"
	OrderDelivered OrderStatus = "Delivered"
)

type Order struct {
	CoreModel
	CustomerID   *int        `json:"-"`
	Customer     *User       `json:"customer,omitempty"`
	DriverID     *int        `json:"-"`
	Driver       *User       `json:"driver,omitempty"`
	RestaurantID *int        `json:"-"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Total        float64     `json:"total"`
	Status       OrderStatus `gorm:"size:20;not null;default:Pending" json:"status"`
}

// OrderItemOption is a picked dish option. ExtraCharge is filled from the
// dish when the order is placed.
type OrderItemOption struct {
	Name        string  `json:"name"`
	Choice      *string `json:"choice,omitempty"`
	ExtraCharge *int    `json:"extraCharge,omitempty"`
}

type OrderItem struct {
	CoreModel
	OrderID int                                  `gorm:"not null;index" json:"-"`
	DishID  int                                  `gorm:"not null" json:"-"`
	Dish    *Dish                                `json:"dish,omitempty"`
	Options datatypes.JSONSlice[OrderItemOption] `json:"options"`
}

type Payment struct {
	CoreModel
	TransactionID string      `gorm:"size:255;not null" json:"transactionId"`
	UserID        int         `gorm:"not null;index" json:"-"`
	User          *User       `json:"user,omitempty"`
	RestaurantID  int         `gorm:"not null" json:"restaurantId"`
	Restaurant    *Restaurant `json:"restaurant,omitempty"`
}
