package models

import (
	"fmt"
	"time"
)

// Brand of a catalog item.
type Brand struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(64);not null" validate:"required,notblank,max=64"`
}

func (b Brand) String() string { return b.Name }

// Category groups catalog items.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(128);not null" validate:"required,notblank,max=128"`
}

func (c Category) String() string { return c.Name }

// Promo is a promotion that items can take part in.
type Promo struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	PromoType   string     `json:"promo_type" gorm:"type:varchar(128);not null" validate:"required,notblank,max=128"`
	Description string     `json:"description" gorm:"type:text"`
	EndTime     *time.Time `json:"end_time,omitempty" gorm:"type:date"`
}

func (p Promo) String() string { return p.PromoType }

// ItemKind discriminates the item variants stored in the items table.
type ItemKind string

const (
	ItemKindGeneric    ItemKind = "generic"
	ItemKindNotebook   ItemKind = "notebook"
	ItemKindDishwasher ItemKind = "dishwasher"
)

// Item is a catalog entry. Kind selects which extension record, if any,
// carries the subtype fields.
type Item struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Kind        ItemKind        `json:"kind" gorm:"type:varchar(16);not null;default:generic;index" validate:"omitempty,oneof=generic notebook dishwasher"`
	Description string          `json:"description" gorm:"type:text"`
	Model       string          `json:"model" gorm:"type:varchar(128);not null" validate:"required,notblank,max=128"`
	Price       float64         `json:"price" gorm:"not null" validate:"gte=0"`
	Color       string          `json:"color" gorm:"type:varchar(30)" validate:"max=30"`
	Warranty    *int            `json:"warranty,omitempty" validate:"omitempty,gte=0"`
	Count       *int            `json:"count,omitempty" validate:"omitempty,gte=0"`
	BrandID     uint            `json:"brand_id" gorm:"not null;index" validate:"required"`
	Brand       *Brand          `json:"brand,omitempty" gorm:"constraint:OnDelete:CASCADE" validate:"-"`
	CategoryID  uint            `json:"category_id" gorm:"not null;index" validate:"required"`
	Category    *Category       `json:"category,omitempty" gorm:"constraint:OnDelete:CASCADE" validate:"-"`
	Promos      []*Promo        `json:"promos,omitempty" gorm:"many2many:item_promos" validate:"-"`
	Notebook    *NotebookSpec   `json:"notebook,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Dishwasher  *DishwasherSpec `json:"dishwasher,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// String renders "<brand> <model>".
func (i Item) String() string {
	brand := ""
	if i.Brand != nil {
		brand = i.Brand.Name
	}
	return fmt.Sprintf("%s %s", brand, i.Model)
}

// NotebookSpec holds the fields specific to notebooks.
type NotebookSpec struct {
	ItemID      uint    `json:"-" gorm:"primaryKey;autoIncrement:false"`
	Display     float64 `json:"display" validate:"gt=0,lt=10"`
	Memory      int     `json:"memory" validate:"gte=0"`
	VideoMemory int     `json:"video_memory" validate:"gte=0"`
	CPU         string  `json:"cpu" gorm:"type:varchar(150)" validate:"required,max=150"`
}

// DishwasherSpec holds the fields specific to dishwashers.
type DishwasherSpec struct {
	ItemID            uint    `json:"-" gorm:"primaryKey;autoIncrement:false"`
	EnergySavingClass string  `json:"energy_saving_class" gorm:"type:varchar(2);not null;default:A+" validate:"omitempty,max=2"`
	Power             int     `json:"power" gorm:"not null;default:0" validate:"gte=0"`
	Width             float64 `json:"width" validate:"gt=0"`
	Height            float64 `json:"height" validate:"gt=0"`
}
