package services

import (
	"context"
	"strings"

	"github.com/Govind-619/CocoMart/models"
	"github.com/Govind-619/CocoMart/utils"
	"gorm.io/gorm"
)

// CatalogService manages the coconut varieties on sale
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CatalogItemInput is a create or partial update of a catalog item
type CatalogItemInput struct {
	Variety   *string  `json:"variety"`
	Size      *string  `json:"size"`
	Rate      *float64 `json:"rate"`
	Available *bool    `json:"available"`
	ImageURL  *string  `json:"image_url"`
}

func (in CatalogItemInput) validate(create bool) error {
	var errs utils.FieldValidationErrors
	if create || in.Variety != nil {
		if in.Variety == nil || strings.TrimSpace(*in.Variety) == "" {
			errs.Add("variety", "Variety is required")
		}
	}
	if create || in.Size != nil {
		if in.Size == nil || strings.TrimSpace(*in.Size) == "" {
			errs.Add("size", "Size is required")
		}
	}
	if create || in.Rate != nil {
		if in.Rate == nil || utils.ValidatePrice(*in.Rate) != nil {
			errs.Add("rate", "Rate must be greater than 0")
		}
	}
	if len(errs) > 0 {
		return utils.NewAppError(utils.KindInvalidInput, errs.Error(), errs)
	}
	return nil
}

// List returns catalog items, optionally only the available ones
func (s *CatalogService) List(ctx context.Context, onlyAvailable bool) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	q := s.db.WithContext(ctx).Order("variety ASC, size ASC")
	if onlyAvailable {
		q = q.Where("available = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, storeError(err, "")
	}
	return items, nil
}

// Get returns one catalog item
func (s *CatalogService) Get(ctx context.Context, id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, storeError(err, "Coconut not found")
	}
	return &item, nil
}

// Create adds a catalog item. Items are available unless stated otherwise.
func (s *CatalogService) Create(ctx context.Context, in CatalogItemInput) (*models.CatalogItem, error) {
	if err := in.validate(true); err != nil {
		return nil, err
	}

	item := models.CatalogItem{
		Variety:   strings.TrimSpace(*in.Variety),
		Size:      strings.TrimSpace(*in.Size),
		Rate:      utils.RoundMoney(*in.Rate),
		Available: true,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, storeError(err, "")
	}
	utils.LogInfo("Catalog item %d created: %s at %.2f", item.ID, item.Descriptor(), item.Rate)
	return &item, nil
}

// Update applies the non nil fields of in. Existing orders keep the rate
// they were placed at.
func (s *CatalogService) Update(ctx context.Context, id uint, in CatalogItemInput) (*models.CatalogItem, error) {
	if err := in.validate(false); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Variety != nil {
		updates["variety"] = strings.TrimSpace(*in.Variety)
	}
	if in.Size != nil {
		updates["size"] = strings.TrimSpace(*in.Size)
	}
	if in.Rate != nil {
		updates["rate"] = utils.RoundMoney(*in.Rate)
	}
	if in.Available != nil {
		updates["available"] = *in.Available
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
			return nil, storeError(err, "Coconut not found")
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a catalog item
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.CatalogItem{}, id)
	if res.Error != nil {
		return storeError(res.Error, "")
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("Coconut not found")
	}
	utils.LogInfo("Catalog item %d deleted", id)
	return nil
}

// orderable loads an item inside an order's transaction and checks it can be
// sold
func (s *CatalogService) orderable(tx *gorm.DB, id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := tx.First(&item, id).Error; err != nil {
		return nil, storeError(err, "Coconut not found")
	}
	if !item.Available {
		return nil, utils.UnavailableError("Coconut is not available")
	}
	return &item, nil
}
