package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
	"github.com/ayushwahile/cloth-store-backend/internal/services"
)

// BalanceHandler manages the owner balance ledger.
type BalanceHandler struct {
	db *gorm.DB
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(db *gorm.DB) *BalanceHandler {
	return &BalanceHandler{db: db}
}

// Get returns the balance for an owner, creating a zero record if
// absent.
func (h *BalanceHandler) Get(c *fiber.Ctx) error {
	balance, err := services.EnsureBalance(h.db, ownerParam(c.Query("owner")))
	if err != nil {
		return err
	}
	return c.JSON(balance)
}

type adjustBalanceRequest struct {
	Amount *float64 `json:"amount"`
	Owner  string   `json:"owner"`
}

// Adjust adds a delta of any sign to the owner balance.
func (h *BalanceHandler) Adjust(c *fiber.Ctx) error {
	var req adjustBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount == nil {
		return fiber.NewError(fiber.StatusBadRequest, "amount is required")
	}

	balance, err := services.EnsureBalance(h.db, ownerParam(req.Owner))
	if err != nil {
		return err
	}

	balance.Amount += *req.Amount
	if err := h.db.Save(balance).Error; err != nil {
		return err
	}

	return c.JSON(balance)
}

func ownerParam(owner string) string {
	if owner == "" {
		return models.DefaultOwnerID
	}
	return owner
}
