package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/middleware"
	"github.com/ayushwahile/cloth-store-backend/internal/models"
	"github.com/ayushwahile/cloth-store-backend/internal/utils"
)

// AccountHandler manages shop owner identity records.
type AccountHandler struct {
	db *gorm.DB
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{db: db}
}

type createAccountRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ShopName string `json:"shopName"`
	Place    string `json:"place"`
}

// Create registers a new owner account after OTP verification.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Name == "" || req.Email == "" || req.ShopName == "" || req.Place == "" {
		return fiber.NewError(fiber.StatusBadRequest, "all fields are required")
	}
	if !utils.ValidPhone(req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone must be a 10-digit number")
	}

	var existing models.Account
	err := h.db.Where("phone = ? OR email = ?", req.Phone, req.Email).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "phone or email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	account := models.Account{
		Phone:    req.Phone,
		Name:     req.Name,
		Email:    req.Email,
		ShopName: req.ShopName,
		Place:    req.Place,
	}

	if err := h.db.Create(&account).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// Get returns owner details by phone.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	var account models.Account
	if err := h.db.Where("phone = ?", c.Params("phone")).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "account not found")
		}
		return err
	}

	return c.JSON(account)
}

// Me returns the account of the authenticated owner session.
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	phone, ok := middleware.GetCurrentOwnerPhone(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var account models.Account
	if err := h.db.Where("phone = ?", phone).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "account not found")
		}
		return err
	}

	return c.JSON(account)
}
