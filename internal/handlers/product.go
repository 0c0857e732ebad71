package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
	"github.com/ayushwahile/cloth-store-backend/internal/utils"
)

// ProductHandler manages the owner-scoped product catalog.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type productRequest struct {
	Brand      string   `json:"brand"`
	Name       string   `json:"name"`
	Size       string   `json:"size"`
	Price      *float64 `json:"price"`
	OwnerPhone string   `json:"ownerPhone"`
}

// List returns all products for an owner with surcharge-inclusive
// prices.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	query := h.db.Model(&models.Product{})
	if owner := c.Query("owner"); owner != "" {
		query = query.Where("owner_phone = ?", owner)
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(products)
}

// Create stores a product with the fixed surcharge applied to the
// entered price.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Price == nil {
		return fiber.NewError(fiber.StatusBadRequest, "price is required")
	}
	if !utils.ValidPhone(req.OwnerPhone) {
		return fiber.NewError(fiber.StatusBadRequest, "owner phone must be a 10-digit number")
	}

	product := models.Product{
		Brand:        req.Brand,
		Name:         req.Name,
		Size:         req.Size,
		EnteredPrice: *req.Price,
		Price:        *req.Price + models.PriceSurcharge,
		OwnerPhone:   req.OwnerPhone,
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// Update rewrites a product, recomputing the displayed price.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.OwnerPhone != "" {
		if !utils.ValidPhone(req.OwnerPhone) {
			return fiber.NewError(fiber.StatusBadRequest, "owner phone must be a 10-digit number")
		}
		product.OwnerPhone = req.OwnerPhone
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Size != "" {
		product.Size = req.Size
	}
	if req.Price != nil {
		product.EnteredPrice = *req.Price
		product.Price = *req.Price + models.PriceSurcharge
	}

	if err := h.db.Save(&product).Error; err != nil {
		return err
	}

	return c.JSON(product)
}

// Delete removes a product by id.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"message": "product deleted"})
}
