package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/config"
	"github.com/ayushwahile/cloth-store-backend/internal/handlers"
	"github.com/ayushwahile/cloth-store-backend/internal/middleware"
	"github.com/ayushwahile/cloth-store-backend/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, sms services.SMSSender) {
	finalizer := services.NewOrderFinalizer(db)
	razorpay := services.NewRazorpayService(cfg)

	orderHandler := handlers.NewOrderHandler(db, finalizer)
	saleHandler := handlers.NewSaleHandler(db)
	productHandler := handlers.NewProductHandler(db)
	balanceHandler := handlers.NewBalanceHandler(db)
	pendingHandler := handlers.NewPendingPaymentHandler(db)
	otpHandler := handlers.NewOTPHandler(db, cfg, sms)
	accountHandler := handlers.NewAccountHandler(db)
	paymentHandler := handlers.NewPaymentHandler(cfg, razorpay, finalizer)

	// Forms (active orders)
	app.Post("/forms", orderHandler.CreateOrAppend)
	app.Get("/forms", orderHandler.List)
	app.Get("/forms/:phone", orderHandler.Get)
	app.Put("/forms/:phone/check-product", orderHandler.CheckProduct)
	app.Delete("/forms/:phone/products/:productIndex", orderHandler.DeleteProduct)
	app.Put("/forms/:phone/paid", orderHandler.MarkPaid)

	// Sales history
	app.Get("/sells", saleHandler.List)
	app.Get("/shopping/:phone", saleHandler.ByPhone)

	// Catalog
	app.Get("/products", productHandler.List)
	app.Post("/products", productHandler.Create)
	app.Put("/products/:id", productHandler.Update)
	app.Delete("/products/:id", productHandler.Delete)

	// Owner balance
	app.Get("/owner-balance", balanceHandler.Get)
	app.Put("/owner-balance", balanceHandler.Adjust)

	// Pending payments
	app.Post("/pending-payments", pendingHandler.Create)
	app.Get("/pending-payments", pendingHandler.List)
	app.Put("/pending-payments/pay", pendingHandler.Pay)
	app.Put("/pending-payments/pay-by-date", pendingHandler.PayByDate)

	// OTP authentication
	app.Post("/send-otp", otpHandler.SendLogin)
	app.Post("/send-otp-form", otpHandler.SendForm)
	app.Post("/send-otp-create", otpHandler.SendCreate)
	app.Post("/verify-otp", otpHandler.Verify)
	app.Post("/verify-otp-create", otpHandler.VerifyCreate)

	// Accounts
	app.Post("/create-account", accountHandler.Create)
	app.Get("/owner-details/:phone", accountHandler.Get)
	app.Get("/owner/me", middleware.OwnerAuth(cfg), accountHandler.Me)

	// Payment gateway
	app.Post("/create-order", paymentHandler.CreateOrder)
	app.Post("/verify-payment", paymentHandler.VerifyPayment)
	app.Post("/payment-callback", paymentHandler.Callback)
}
