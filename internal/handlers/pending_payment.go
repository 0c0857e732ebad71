package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
)

// PendingPaymentHandler manages amounts awaiting manual confirmation.
type PendingPaymentHandler struct {
	db *gorm.DB
}

// NewPendingPaymentHandler constructs PendingPaymentHandler.
func NewPendingPaymentHandler(db *gorm.DB) *PendingPaymentHandler {
	return &PendingPaymentHandler{db: db}
}

type pendingPaymentRequest struct {
	Amount *float64 `json:"amount"`
	Date   string   `json:"date"`
}

// Create records a new pending payment.
func (h *PendingPaymentHandler) Create(c *fiber.Ctx) error {
	var req pendingPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount == nil || req.Date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "amount and date are required")
	}

	payment := models.PendingPayment{Amount: *req.Amount, Date: req.Date}
	if err := h.db.Create(&payment).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// List returns pending payments whose date string starts with the given
// prefix, unpaid first.
func (h *PendingPaymentHandler) List(c *fiber.Ctx) error {
	query := h.db.Model(&models.PendingPayment{})
	if date := c.Query("date"); date != "" {
		query = query.Where("date LIKE ?", date+"%")
	}

	var payments []models.PendingPayment
	if err := query.Order("paid asc, date asc").Find(&payments).Error; err != nil {
		return err
	}

	return c.JSON(payments)
}

// Pay marks the pending payment with the exact timestamp string as
// paid.
func (h *PendingPaymentHandler) Pay(c *fiber.Ctx) error {
	var req pendingPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "date is required")
	}

	var payment models.PendingPayment
	if err := h.db.Where("date = ?", req.Date).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "pending payment not found")
		}
		return err
	}

	payment.Paid = true
	if err := h.db.Save(&payment).Error; err != nil {
		return err
	}

	return c.JSON(payment)
}

// PayByDate marks every pending payment matching a date prefix as paid.
func (h *PendingPaymentHandler) PayByDate(c *fiber.Ctx) error {
	var req pendingPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Date == "" {
		return fiber.NewError(fiber.StatusBadRequest, "date is required")
	}

	result := h.db.Model(&models.PendingPayment{}).
		Where("date LIKE ?", req.Date+"%").
		Update("paid", true)
	if result.Error != nil {
		return result.Error
	}

	return c.JSON(fiber.Map{"message": "pending payments settled", "updated": result.RowsAffected})
}
