package handlers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/config"
	"github.com/ayushwahile/cloth-store-backend/internal/models"
	"github.com/ayushwahile/cloth-store-backend/internal/services"
	"github.com/ayushwahile/cloth-store-backend/internal/utils"
)

const otpValidity = 10 * time.Minute

// OTPHandler issues and verifies one-time codes over SMS.
type OTPHandler struct {
	db  *gorm.DB
	cfg *config.Config
	sms services.SMSSender
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(db *gorm.DB, cfg *config.Config, sms services.SMSSender) *OTPHandler {
	return &OTPHandler{db: db, cfg: cfg, sms: sms}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

// SendLogin issues a login code for a registered shop owner.
func (h *OTPHandler) SendLogin(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !utils.ValidPhone(req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone must be a 10-digit number")
	}

	if h.cfg.OwnerPhone != "" && req.Phone != h.cfg.OwnerPhone {
		return fiber.NewError(fiber.StatusForbidden, "phone mismatch")
	}

	var account models.Account
	if err := h.db.Where("phone = ?", req.Phone).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "account not created")
		}
		return err
	}

	return h.issue(c, req.Phone, false)
}

// SendForm issues a code gating order creation; any valid phone is
// accepted.
func (h *OTPHandler) SendForm(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !utils.ValidPhone(req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone must be a 10-digit number")
	}

	return h.issue(c, req.Phone, false)
}

// SendCreate issues a code gating account creation. Only prior
// unverified sessions are cleared.
func (h *OTPHandler) SendCreate(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !utils.ValidPhone(req.Phone) {
		return fiber.NewError(fiber.StatusBadRequest, "phone must be a 10-digit number")
	}

	return h.issue(c, req.Phone, true)
}

func (h *OTPHandler) issue(c *fiber.Ctx, phone string, unverifiedOnly bool) error {
	cleanup := h.db.Where("phone = ?", phone)
	if unverifiedOnly {
		cleanup = cleanup.Where("verified = ?", false)
	}
	if err := cleanup.Delete(&models.OTPSession{}).Error; err != nil {
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	session := models.OTPSession{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(otpValidity),
	}
	if err := h.db.Create(&session).Error; err != nil {
		return err
	}

	// The session row stays even when delivery fails; the client may
	// retry sending without invalidating the code.
	if err := h.sms.Send(phone, fmt.Sprintf("Your Cloth Store verification code is %s. It expires in 10 minutes.", code)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to send OTP: "+err.Error())
	}

	return c.JSON(fiber.Map{"message": "OTP sent successfully"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// Verify validates a login/form code. For registered owners a session
// token accompanies the confirmation.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var session models.OTPSession
	err := h.db.Where("phone = ?", req.Phone).
		Order("created_at desc").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "OTP not found")
		}
		return err
	}

	if session.Expired(time.Now()) {
		return fiber.NewError(fiber.StatusBadRequest, "OTP expired")
	}
	if session.Verified {
		return fiber.NewError(fiber.StatusBadRequest, "OTP already used")
	}
	if session.Code != req.Code {
		return fiber.NewError(fiber.StatusBadRequest, "invalid OTP")
	}

	if err := h.consume(&session); err != nil {
		return err
	}

	resp := fiber.Map{"message": "OTP verified successfully"}

	var account models.Account
	if err := h.db.Where("phone = ?", req.Phone).First(&account).Error; err == nil {
		token, err := utils.GenerateToken(h.cfg.JWTSecret, account.Phone, h.cfg.TokenExpires)
		if err != nil {
			return err
		}
		resp["token"] = token
	}

	return c.JSON(resp)
}

// VerifyCreate validates an account-creation code. Expired sessions are
// deleted as cleanup and already-used ones are filtered out up front.
func (h *OTPHandler) VerifyCreate(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var session models.OTPSession
	err := h.db.Where("phone = ? AND verified = ?", req.Phone, false).
		Order("created_at desc").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "OTP not found")
		}
		return err
	}

	if session.Expired(time.Now()) {
		if err := h.db.Delete(&models.OTPSession{}, "id = ?", session.ID).Error; err != nil {
			return err
		}
		return fiber.NewError(fiber.StatusBadRequest, "OTP expired")
	}
	if session.Code != req.Code {
		return fiber.NewError(fiber.StatusBadRequest, "invalid OTP")
	}

	if err := h.consume(&session); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "OTP verified successfully"})
}

// consume flips the verified flag and deletes the session so the code
// can never be replayed.
func (h *OTPHandler) consume(session *models.OTPSession) error {
	session.Verified = true
	if err := h.db.Save(session).Error; err != nil {
		return err
	}
	return h.db.Delete(&models.OTPSession{}, "id = ?", session.ID).Error
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
