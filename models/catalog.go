package models

import (
	"fmt"

	"gorm.io/gorm"
)

// CatalogItem is a coconut variety on sale
type CatalogItem struct {
	gorm.Model
	Variety   string  `gorm:"not null" json:"variety"`
	Size      string  `gorm:"not null" json:"size"`
	Rate      float64 `gorm:"not null" json:"rate"`
	Available bool    `gorm:"not null" json:"available"`
	ImageURL  string  `json:"image_url"`
}

// Descriptor is the short human label used in notifications and invoices
func (c CatalogItem) Descriptor() string {
	return fmt.Sprintf("%s (%s)", c.Variety, c.Size)
}
