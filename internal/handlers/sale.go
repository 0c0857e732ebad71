package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
)

// SaleHandler serves the sales history.
type SaleHandler struct {
	db *gorm.DB
}

// NewSaleHandler constructs SaleHandler.
func NewSaleHandler(db *gorm.DB) *SaleHandler {
	return &SaleHandler{db: db}
}

// List returns sales newest-first, optionally filtered by customer or
// owner phone.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	query := h.db.Preload("Items", saleItems).Model(&models.Sale{})
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}
	if owner := c.Query("owner"); owner != "" {
		query = query.Where("owner_phone = ?", owner)
	}

	var sales []models.Sale
	if err := query.Order("paid_at desc").Find(&sales).Error; err != nil {
		return err
	}

	return c.JSON(sales)
}

// ByPhone returns a customer's purchase history newest-first.
func (h *SaleHandler) ByPhone(c *fiber.Ctx) error {
	var sales []models.Sale
	if err := h.db.Preload("Items", saleItems).
		Where("phone = ?", c.Params("phone")).
		Order("paid_at desc").
		Find(&sales).Error; err != nil {
		return err
	}

	return c.JSON(sales)
}

func saleItems(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
