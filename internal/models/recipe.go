package models

import "time"

// Owned is implemented by records that belong to exactly one user.
type Owned interface {
	GetID() uint
	GetName() string
	GetOwnerID() string
	SetID(id uint)
}

// Tag labels recipes. Names are not unique, not even per owner.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   string    `json:"-" gorm:"index;type:varchar(36);not null"`
	Owner     *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
}

func (t Tag) GetID() uint        { return t.ID }
func (t Tag) GetName() string    { return t.Name }
func (t Tag) GetOwnerID() string { return t.OwnerID }
func (t Tag) String() string     { return t.Name }
func (t *Tag) SetID(id uint)     { t.ID = id }

// Ingredient is something a recipe is made of.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	OwnerID   string    `json:"-" gorm:"index;type:varchar(36);not null"`
	Owner     *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"-"`
}

func (i Ingredient) GetID() uint        { return i.ID }
func (i Ingredient) GetName() string    { return i.Name }
func (i Ingredient) GetOwnerID() string { return i.OwnerID }
func (i Ingredient) String() string     { return i.Name }
func (i *Ingredient) SetID(id uint)     { i.ID = id }

// Recipe aggregates tags and ingredients of the same owner.
type Recipe struct {
	ID          uint          `gorm:"primaryKey"`
	Name        string        `gorm:"type:varchar(255);not null"`
	TimeMinutes int           `gorm:"not null;default:0"`
	Price       float64       `gorm:"not null;default:0"`
	Link        string        `gorm:"type:varchar(255)"`
	OwnerID     string        `gorm:"index;type:varchar(36);not null"`
	Owner       *User         `gorm:"constraint:OnDelete:CASCADE"`
	Tags        []*Tag        `gorm:"many2many:recipe_tags"`
	Ingredients []*Ingredient `gorm:"many2many:recipe_ingredients"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Recipe) GetID() uint        { return r.ID }
func (r Recipe) GetName() string    { return r.Name }
func (r Recipe) GetOwnerID() string { return r.OwnerID }
func (r Recipe) String() string     { return r.Name }
func (r *Recipe) SetID(id uint)     { r.ID = id }
