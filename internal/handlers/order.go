package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
	"github.com/ayushwahile/cloth-store-backend/internal/services"
)

// OrderHandler manages form (active order) endpoints.
type OrderHandler struct {
	db        *gorm.DB
	finalizer *services.OrderFinalizer
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, finalizer *services.OrderFinalizer) *OrderHandler {
	return &OrderHandler{db: db, finalizer: finalizer}
}

type orderItemRequest struct {
	Brand string  `json:"brand"`
	Name  string  `json:"name"`
	Size  string  `json:"size"`
	Price float64 `json:"price"`
	Floor string  `json:"floor"`
}

type createOrderRequest struct {
	Phone      string             `json:"phone"`
	Name       string             `json:"name"`
	Date       string             `json:"date"`
	OwnerPhone string             `json:"ownerPhone"`
	Products   []orderItemRequest `json:"products"`
}

// CreateOrAppend creates a new form for the phone or appends products
// to the existing one.
func (h *OrderHandler) CreateOrAppend(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone is required")
	}

	var order models.Order
	err := h.db.Preload("Items", orderItems).Where("phone = ?", req.Phone).First(&order).Error
	switch {
	case err == nil:
		next := len(order.Items)
		for i, p := range req.Products {
			item := models.OrderItem{
				OrderID:  order.ID,
				Position: next + i,
				Brand:    p.Brand,
				Name:     p.Name,
				Size:     p.Size,
				Price:    p.Price,
				Floor:    p.Floor,
			}
			if err := h.db.Create(&item).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		return c.JSON(order)
	case errors.Is(err, gorm.ErrRecordNotFound):
		order = models.Order{
			Phone:        req.Phone,
			CustomerName: req.Name,
			OrderDate:    req.Date,
			OwnerPhone:   req.OwnerPhone,
		}
		for i, p := range req.Products {
			order.Items = append(order.Items, models.OrderItem{
				Position: i,
				Brand:    p.Brand,
				Name:     p.Name,
				Size:     p.Size,
				Price:    p.Price,
				Floor:    p.Floor,
			})
		}
		if err := h.db.Create(&order).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	default:
		return err
	}
}

// List returns all forms, optionally projected to phone numbers or
// filtered by owner phone.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	query := h.db.Preload("Items", orderItems).Model(&models.Order{})
	if owner := c.Query("owner"); owner != "" {
		query = query.Where("owner_phone = ?", owner)
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		return err
	}

	if c.Query("phonesOnly") == "true" {
		phones := make([]string, 0, len(orders))
		for _, o := range orders {
			phones = append(phones, o.Phone)
		}
		return c.JSON(fiber.Map{"phones": phones})
	}

	return c.JSON(orders)
}

// Get returns the form for a phone.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.loadOrder(c.Params("phone"))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

type checkProductRequest struct {
	ProductIndex *int `json:"productIndex"`
}

// CheckProduct marks the line item at the given position as picked.
func (h *OrderHandler) CheckProduct(c *fiber.Ctx) error {
	var req checkProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.ProductIndex == nil {
		return fiber.NewError(fiber.StatusBadRequest, "productIndex is required")
	}

	order, err := h.loadOrder(c.Params("phone"))
	if err != nil {
		return err
	}

	idx := *req.ProductIndex
	if idx < 0 || idx >= len(order.Items) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product index")
	}

	order.Items[idx].Checked = true
	if err := h.db.Save(&order.Items[idx]).Error; err != nil {
		return err
	}

	return c.JSON(order)
}

// DeleteProduct removes the line item at the given position and shifts
// later items down by one.
func (h *OrderHandler) DeleteProduct(c *fiber.Ctx) error {
	idx, err := c.ParamsInt("productIndex")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product index")
	}

	order, err := h.loadOrder(c.Params("phone"))
	if err != nil {
		return err
	}

	if idx < 0 || idx >= len(order.Items) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product index")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "id = ?", order.Items[idx].ID).Error; err != nil {
			return err
		}
		for _, item := range order.Items[idx+1:] {
			if err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).
				Update("position", item.Position-1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	updated, err := h.loadOrder(order.Phone)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "product removed", "order": updated})
}

type markPaidRequest struct {
	PaymentDate       string `json:"paymentDate"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
}

// MarkPaid finalizes the form: writes a sale, accrues the owner
// balance, and deletes the form.
func (h *OrderHandler) MarkPaid(c *fiber.Ctx) error {
	var req markPaidRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.finalizer.Finalize(c.Params("phone"), req.PaymentDate, req.RazorpayPaymentID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(order)
}

func (h *OrderHandler) loadOrder(phone string) (*models.Order, error) {
	var order models.Order
	if err := h.db.Preload("Items", orderItems).Where("phone = ?", phone).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return nil, err
	}
	return &order, nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
