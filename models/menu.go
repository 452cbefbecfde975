package models

import (
	"time"

	"storefront-api/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodType is the menu section an item is listed under
type FoodType string

const (
	FoodStarters FoodType = "starters"
	FoodSalads   FoodType = "salads"
	FoodMains    FoodType = "mains"
	FoodSides    FoodType = "sides"
	FoodDesserts FoodType = "desserts"
	FoodDrinks   FoodType = "drinks"
)

// FoodTypes is the display order of the menu sections
var FoodTypes = []FoodType{FoodStarters, FoodSalads, FoodMains, FoodSides, FoodDesserts, FoodDrinks}

func (f FoodType) Valid() bool {
	for _, t := range FoodTypes {
		if f == t {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID                string           `json:"id" gorm:"primaryKey"`
	Name              string           `json:"name" gorm:"not null" validate:"required"`
	Price             float64          `json:"price" gorm:"not null" validate:"gte=0"`
	Description       string           `json:"description"`
	LongDescription   string           `json:"longDescription,omitempty"`
	ImageURL          string           `json:"imageUrl,omitempty"`
	FoodType          FoodType         `json:"foodType,omitempty" gorm:"index" validate:"omitempty,foodtype"`
	Calories          *int             `json:"calories,omitempty" validate:"omitempty,gte=0"`
	Protein           *float64         `json:"protein,omitempty" validate:"omitempty,gte=0"`
	Carbs             *float64         `json:"carbs,omitempty" validate:"omitempty,gte=0"`
	Fat               *float64         `json:"fat,omitempty" validate:"omitempty,gte=0"`
	Allergens         []string         `json:"allergens,omitempty" gorm:"serializer:json"`
	Sides             []pricing.Option `json:"sides,omitempty" gorm:"serializer:json"`
	Drinks            []pricing.Option `json:"drinks,omitempty" gorm:"serializer:json"`
	Extras            []pricing.Option `json:"extras,omitempty" gorm:"serializer:json"`
	CustomIngredients []string         `json:"customIngredients,omitempty" gorm:"serializer:json"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MenuItemPatch carries a partial update; nil fields are left alone
type MenuItemPatch struct {
	Name              *string           `json:"name"`
	Price             *float64          `json:"price" binding:"omitempty,gte=0"`
	Description       *string           `json:"description"`
	LongDescription   *string           `json:"longDescription"`
	ImageURL          *string           `json:"imageUrl"`
	FoodType          *FoodType         `json:"foodType" binding:"omitempty,foodtype"`
	Calories          *int              `json:"calories"`
	Protein           *float64          `json:"protein"`
	Carbs             *float64          `json:"carbs"`
	Fat               *float64          `json:"fat"`
	Allergens         *[]string         `json:"allergens"`
	Sides             *[]pricing.Option `json:"sides"`
	Drinks            *[]pricing.Option `json:"drinks"`
	Extras            *[]pricing.Option `json:"extras"`
	CustomIngredients *[]string         `json:"customIngredients"`
}

// Apply copies every set field of p onto m
func (p MenuItemPatch) Apply(m *MenuItem) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Price != nil {
		m.Price = *p.Price
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.LongDescription != nil {
		m.LongDescription = *p.LongDescription
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	if p.FoodType != nil {
		m.FoodType = *p.FoodType
	}
	if p.Calories != nil {
		m.Calories = p.Calories
	}
	if p.Protein != nil {
		m.Protein = p.Protein
	}
	if p.Carbs != nil {
		m.Carbs = p.Carbs
	}
	if p.Fat != nil {
		m.Fat = p.Fat
	}
	if p.Allergens != nil {
		m.Allergens = *p.Allergens
	}
	if p.Sides != nil {
		m.Sides = *p.Sides
	}
	if p.Drinks != nil {
		m.Drinks = *p.Drinks
	}
	if p.Extras != nil {
		m.Extras = *p.Extras
	}
	if p.CustomIngredients != nil {
		m.CustomIngredients = *p.CustomIngredients
	}
}

// RestaurantInfo is the single storefront profile row
type RestaurantInfo struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Name      string    `json:"name" binding:"required"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Phone     string    `json:"phone"`
	Hours     string    `json:"hours"`
	UpdatedAt time.Time `json:"updatedAt"`
}
