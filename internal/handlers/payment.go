package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ayushwahile/cloth-store-backend/internal/config"
	"github.com/ayushwahile/cloth-store-backend/internal/services"
)

// PaymentHandler integrates the Razorpay gateway: order creation,
// signature verification, and the asynchronous payment callback.
type PaymentHandler struct {
	cfg       *config.Config
	razorpay  *services.RazorpayService
	finalizer *services.OrderFinalizer
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(cfg *config.Config, razorpay *services.RazorpayService, finalizer *services.OrderFinalizer) *PaymentHandler {
	return &PaymentHandler{cfg: cfg, razorpay: razorpay, finalizer: finalizer}
}

type createGatewayOrderRequest struct {
	Amount *float64 `json:"amount"`
	Phone  string   `json:"phone"`
}

// CreateOrder creates a gateway order for hosted checkout.
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req createGatewayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Amount == nil || *req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be positive")
	}

	receipt := fmt.Sprintf("order_%s_%d", req.Phone, time.Now().Unix())
	order, err := h.razorpay.CreateOrder(*req.Amount, receipt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"keyId":    h.razorpay.KeyID(),
	})
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// VerifyPayment recomputes and compares the gateway signature.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req verifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing payment fields")
	}

	verified := h.razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	return c.JSON(fiber.Map{"verified": verified})
}

// Callback handles the asynchronous gateway notification. On success it
// finalizes the order and redirects to the confirmation page instead of
// returning JSON.
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	paymentID := c.FormValue("razorpay_payment_id")
	orderID := c.FormValue("razorpay_order_id")
	signature := c.FormValue("razorpay_signature")
	phone := c.Query("phone")

	if paymentID == "" || orderID == "" || signature == "" || phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing payment callback fields")
	}

	if !h.razorpay.VerifySignature(orderID, paymentID, signature) {
		return fiber.NewError(fiber.StatusBadRequest, "payment signature mismatch")
	}

	if _, err := h.finalizer.FindOrderWithRetry(phone); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	paymentDate := time.Now().Format("2006-01-02")
	if _, err := h.finalizer.Finalize(phone, paymentDate, paymentID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	redirect := fmt.Sprintf("%s?phone=%s&paymentId=%s",
		h.cfg.PaymentRedirectURL, url.QueryEscape(phone), url.QueryEscape(paymentID))
	return c.Redirect(redirect, fiber.StatusFound)
}
