// Package model holds the GraphQL-facing types. They are bound by gqlgen
// through autobind; mapping from the domain models lives in package graph.
package model

import "time"

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

type User struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Verified  bool      `json:"verified"`
}

// Category.restaurantCount is resolved on demand.
type Category struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	CoverImg *string `json:"coverImg,omitempty"`
}

type DishChoice struct {
	Name  string `json:"name"`
	Extra *int   `json:"extra,omitempty"`
}

type DishOption struct {
	Name    string       `json:"name"`
	Choices []DishChoice `json:"choices,omitempty"`
	Extra   *int         `json:"extra,omitempty"`
}

type Dish struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Price       int          `json:"price"`
	Photo       *string      `json:"photo,omitempty"`
	Description string       `json:"description"`
	Options     []DishOption `json:"options"`
}

type Restaurant struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	CoverImg      string     `json:"coverImg"`
	Address       string     `json:"address"`
	Category      *Category  `json:"category,omitempty"`
	IsPromoted    bool       `json:"isPromoted"`
	PromotedUntil *time.Time `json:"promotedUntil,omitempty"`
	Menu          []Dish     `json:"menu"`
	Orders        []Order    `json:"orders"`
}

type OrderItemOption struct {
	Name        string  `json:"name"`
	Choice      *string `json:"choice,omitempty"`
	ExtraCharge *int    `json:"extraCharge,omitempty"`
}

type OrderItem struct {
	ID      int               `json:"id"`
	Dish    *Dish             `json:"dish,omitempty"`
	Options []OrderItemOption `json:"options"`
}

type Order struct {
	ID         int         `json:"id"`
	CreatedAt  time.Time   `json:"createdAt"`
	CustomerID *int        `json:"customerId,omitempty"`
	DriverID   *int        `json:"driverId,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
}

type Payment struct {
	ID            int         `json:"id"`
	CreatedAt     time.Time   `json:"createdAt"`
	TransactionID string      `json:"transactionId"`
	RestaurantID  int         `json:"restaurantId"`
	Restaurant    *Restaurant `json:"restaurant,omitempty"`
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

type CreateAccountInput struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

type CreateAccountOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
	Token *string `json:"token,omitempty"`
}

type EditProfileInput struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type EditProfileOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type VerifyEmailInput struct {
	Code string `json:"code"`
}

type VerifyEmailOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type UserProfileOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
	User  *User   `json:"user,omitempty"`
}

// ---------------------------------------------------------------------------
// Restaurants and dishes
// ---------------------------------------------------------------------------

type CreateRestaurantInput struct {
	Name         string `json:"name"`
	CoverImg     string `json:"coverImg"`
	Address      string `json:"address"`
	CategoryName string `json:"categoryName"`
}

type CreateRestaurantOutput struct {
	Ok           bool    `json:"ok"`
	Error        *string `json:"error,omitempty"`
	RestaurantID *int    `json:"restaurantId,omitempty"`
}

type EditRestaurantInput struct {
	RestaurantID int     `json:"restaurantId"`
	Name         *string `json:"name,omitempty"`
	CoverImg     *string `json:"coverImg,omitempty"`
	Address      *string `json:"address,omitempty"`
	CategoryName *string `json:"categoryName,omitempty"`
}

type EditRestaurantOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type DeleteRestaurantInput struct {
	RestaurantID int `json:"restaurantId"`
}

type DeleteRestaurantOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type DishChoiceInput struct {
	Name  string `json:"name"`
	Extra *int   `json:"extra,omitempty"`
}

type DishOptionInput struct {
	Name    string            `json:"name"`
	Choices []DishChoiceInput `json:"choices,omitempty"`
	Extra   *int              `json:"extra,omitempty"`
}

type CreateDishInput struct {
	RestaurantID int               `json:"restaurantId"`
	Name         string            `json:"name"`
	Price        int               `json:"price"`
	Photo        *string           `json:"photo,omitempty"`
	Description  string            `json:"description"`
	Options      []DishOptionInput `json:"options,omitempty"`
}

type CreateDishOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type EditDishInput struct {
	DishID      int               `json:"dishId"`
	Name        *string           `json:"name,omitempty"`
	Price       *int              `json:"price,omitempty"`
	Photo       *string           `json:"photo,omitempty"`
	Description *string           `json:"description,omitempty"`
	Options     []DishOptionInput `json:"options,omitempty"`
}

type EditDishOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type DeleteDishInput struct {
	DishID int `json:"dishId"`
}

type DeleteDishOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type MyRestaurantsOutput struct {
	Ok          bool         `json:"ok"`
	Error       *string      `json:"error,omitempty"`
	Restaurants []Restaurant `json:"restaurants,omitempty"`
}

type MyRestaurantInput struct {
	ID int `json:"id"`
}

type MyRestaurantOutput struct {
	Ok         bool        `json:"ok"`
	Error      *string     `json:"error,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

type AllCategoriesOutput struct {
	Ok         bool       `json:"ok"`
	Error      *string    `json:"error,omitempty"`
	Categories []Category `json:"categories,omitempty"`
}

type CategoryInput struct {
	Slug string `json:"slug"`
	Page *int   `json:"page,omitempty"`
}

type CategoryOutput struct {
	Ok           bool         `json:"ok"`
	Error        *string      `json:"error,omitempty"`
	TotalPages   *int         `json:"totalPages,omitempty"`
	TotalResults *int         `json:"totalResults,omitempty"`
	Category     *Category    `json:"category,omitempty"`
	Restaurants  []Restaurant `json:"restaurants,omitempty"`
}

type RestaurantsInput struct {
	Page *int `json:"page,omitempty"`
}

type RestaurantsOutput struct {
	Ok           bool         `json:"ok"`
	Error        *string      `json:"error,omitempty"`
	TotalPages   *int         `json:"totalPages,omitempty"`
	TotalResults *int         `json:"totalResults,omitempty"`
	Results      []Restaurant `json:"results,omitempty"`
}

type RestaurantInput struct {
	RestaurantID int `json:"restaurantId"`
}

type RestaurantOutput struct {
	Ok         bool        `json:"ok"`
	Error      *string     `json:"error,omitempty"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
}

type SearchRestaurantInput struct {
	Query string `json:"query"`
	Page  *int   `json:"page,omitempty"`
}

type SearchRestaurantOutput struct {
	Ok           bool         `json:"ok"`
	Error        *string      `json:"error,omitempty"`
	TotalPages   *int         `json:"totalPages,omitempty"`
	TotalResults *int         `json:"totalResults,omitempty"`
	Restaurants  []Restaurant `json:"restaurants,omitempty"`
}

// ---------------------------------------------------------------------------
// Orders and payments
// ---------------------------------------------------------------------------

type OrderItemOptionInput struct {
	Name   string  `json:"name"`
	Choice *string `json:"choice,omitempty"`
}

type CreateOrderItemInput struct {
	DishID  int                    `json:"dishId"`
	Options []OrderItemOptionInput `json:"options,omitempty"`
}

type CreateOrderInput struct {
	RestaurantID int                    `json:"restaurantId"`
	Items        []CreateOrderItemInput `json:"items"`
}

type CreateOrderOutput struct {
	Ok      bool    `json:"ok"`
	Error   *string `json:"error,omitempty"`
	OrderID *int    `json:"orderId,omitempty"`
}

type GetOrdersInput struct {
	Status *OrderStatus `json:"status,omitempty"`
}

type GetOrdersOutput struct {
	Ok     bool    `json:"ok"`
	Error  *string `json:"error,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

type GetOrderInput struct {
	ID int `json:"id"`
}

type GetOrderOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
	Order *Order  `json:"order,omitempty"`
}

type EditOrderInput struct {
	ID     int         `json:"id"`
	Status OrderStatus `json:"status"`
}

type EditOrderOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type TakeOrderInput struct {
	ID int `json:"id"`
}

type TakeOrderOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type CreatePaymentInput struct {
	TransactionID string `json:"transactionId"`
	RestaurantID  int    `json:"restaurantId"`
}

type CreatePaymentOutput struct {
	Ok    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

type GetPaymentsOutput struct {
	Ok       bool      `json:"ok"`
	Error    *string   `json:"error,omitempty"`
	Payments []Payment `json:"payments,omitempty"`
}
