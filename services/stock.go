package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/models"
)

// StockService is the inventory ledger. All mutations run on the caller's
// transaction so a failed order leaves no partial deduction behind.
type StockService struct {
	AllowOversell bool
}

func NewStockService(allowOversell bool) *StockService {
	return &StockService{AllowOversell: allowOversell}
}

// Reserve deducts qty from an ingredient's stock. The sufficiency check and
// the deduction are one conditional UPDATE, so concurrent orders cannot both
// deduct past zero. The stock row is created at 0 if absent, which also lets
// it go negative when overselling is enabled.
func (s *StockService) Reserve(tx *gorm.DB, ingredientID uint, qty float64) error {
	if err := s.ensureRow(tx, ingredientID); err != nil {
		return err
	}

	if s.AllowOversell {
		return tx.Model(&models.Stock{}).
			Where("ingredient_id = ?", ingredientID).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", qty)).Error
	}

	res := tx.Model(&models.Stock{}).
		Where("ingredient_id = ? AND quantity >= ?", ingredientID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var ing models.Ingredient
		tx.First(&ing, ingredientID)
		return &InsufficientStockError{IngredientID: ingredientID, Ingredient: ing.Name}
	}
	return nil
}

// Restore adds qty back, mirroring Reserve on cancellation.
func (s *StockService) Restore(tx *gorm.DB, ingredientID uint, qty float64) error {
	if err := s.ensureRow(tx, ingredientID); err != nil {
		return err
	}
	return tx.Model(&models.Stock{}).
		Where("ingredient_id = ?", ingredientID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (s *StockService) ensureRow(tx *gorm.DB, ingredientID uint) error {
	var stock models.Stock
	err := tx.Where("ingredient_id = ?", ingredientID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.Stock{IngredientID: ingredientID, Quantity: 0}).Error
	}
	return err
}

// RecipeLinesFor resolves the consumption rows for an order line: the
// variant's own recipe wins when it has one, otherwise the parent item's.
// Deduction and restoration both go through here to keep the ledger balanced.
func RecipeLinesFor(item *models.MenuItem, variant *models.MenuItemVariant) []models.Recipe {
	if variant != nil && len(variant.Recipes) > 0 {
		return variant.Recipes
	}
	if item != nil {
		return item.Recipes
	}
	return nil
}
