package models

import (
	"time"

	"gorm.io/datatypes"
)

type Category struct {
	CoreModel
	Name     string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Slug     string  `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	CoverImg *string `json:"coverImg"`
}

type Restaurant struct {
	CoreModel
	Name          string     `gorm:"size:255;not null" json:"name"`
	CoverImg      string     `json:"coverImg"`
	Address       string     `json:"address"`
	CategoryID    *int       `json:"-"`
	Category      *Category  `json:"category,omitempty"`
	OwnerID       int        `gorm:"not null;index" json:"-"`
	Owner         *User      `json:"owner,omitempty"`
	Menu          []Dish     `gorm:"foreignKey:RestaurantID" json:"menu,omitempty"`
	Orders        []Order    `gorm:"foreignKey:RestaurantID" json:"orders,omitempty"`
	IsPromoted    bool       `gorm:"not null;default:false" json:"isPromoted"`
	PromotedUntil *time.Time `json:"promotedUntil"`
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
	CoreModel
	Name         string                          `gorm:"size:255;not null" json:"name"`
	Price        int                             `gorm:"not null" json:"price"`
	Photo        *string                         `json:"photo"`
	Description  string                          `json:"description"`
	RestaurantID int                             `gorm:"not null;index" json:"-"`
	Restaurant   *Restaurant                     `json:"restaurant,omitempty"`
	Options      datatypes.JSONSlice[DishOption] `json:"options"`
}

// ExtraFor returns the surcharge for picking option (and, when the option has
// choices, the named choice). Unknown options cost nothing.
func (d *Dish) ExtraFor(option string, choice *string) int {
	for _, o := range d.Options {
		if o.Name != option {
			continue
		}
		if o.Extra != nil {
			return *o.Extra
		}
		if choice == nil {
			return 0
		}
		for _, c := range o.Choices {
			if c.Name == *choice && c.Extra != nil {
				return *c.Extra
			}
		}
		return 0
	}
	return 0
}
