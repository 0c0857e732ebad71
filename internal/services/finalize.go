package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
)

// ErrOrderNotFound signals that no active order exists for a phone.
var ErrOrderNotFound = errors.New("order not found")

// OrderFinalizer turns an active order into a sale record, accrues the
// owner balance, and removes the order, all inside one transaction.
type OrderFinalizer struct {
	db *gorm.DB

	// retryDelays paces the callback-side order lookup; the gateway can
	// deliver the callback before the order write is visible.
	retryDelays []time.Duration
}

// NewOrderFinalizer constructs an OrderFinalizer.
func NewOrderFinalizer(db *gorm.DB) *OrderFinalizer {
	return &OrderFinalizer{
		db:          db,
		retryDelays: []time.Duration{time.Second, 2 * time.Second, 3 * time.Second},
	}
}

// Finalize marks the order for phone as paid, writes a Sale snapshot,
// increments the owner balance by the order total, and deletes the
// order. The pre-deletion order state is returned.
func (f *OrderFinalizer) Finalize(phone, paymentDate, razorpayPaymentID string) (*models.Order, error) {
	var finalized models.Order

	err := f.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).Where("phone = ?", phone).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		order.Paid = true
		order.PaymentDate = paymentDate
		if razorpayPaymentID != "" {
			order.RazorpayPaymentID = razorpayPaymentID
		}

		total := order.Total()

		sale := models.Sale{
			Phone:             order.Phone,
			CustomerName:      order.CustomerName,
			OrderDate:         order.OrderDate,
			OwnerPhone:        order.OwnerPhone,
			TotalPrice:        total,
			PaymentDate:       paymentDate,
			PaidAt:            time.Now(),
			RazorpayPaymentID: order.RazorpayPaymentID,
		}
		for _, item := range order.Items {
			sale.Items = append(sale.Items, models.SaleItem{
				Position: item.Position,
				Brand:    item.Brand,
				Name:     item.Name,
				Size:     item.Size,
				Price:    item.Price,
				Floor:    item.Floor,
			})
		}

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		balanceOwner := order.OwnerPhone
		if balanceOwner == "" {
			balanceOwner = models.DefaultOwnerID
		}
		balance, err := EnsureBalance(tx, balanceOwner)
		if err != nil {
			return err
		}
		balance.Amount += total
		if err := tx.Save(balance).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, "id = ?", order.ID).Error; err != nil {
			return err
		}

		finalized = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &finalized, nil
}

// FindOrderWithRetry looks up the order for phone, retrying with the
// configured delays to absorb the race between order creation and
// gateway callback delivery.
func (f *OrderFinalizer) FindOrderWithRetry(phone string) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < len(f.retryDelays); attempt++ {
		var order models.Order
		err := f.db.Where("phone = ?", phone).First(&order).Error
		if err == nil {
			return &order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		lastErr = ErrOrderNotFound
		time.Sleep(f.retryDelays[attempt])
	}
	return nil, lastErr
}

// SetRetryDelays overrides the callback lookup pacing.
func (f *OrderFinalizer) SetRetryDelays(delays []time.Duration) {
	f.retryDelays = delays
}

// EnsureBalance returns the balance record for owner, creating it at
// zero if absent.
func EnsureBalance(db *gorm.DB, owner string) (*models.Balance, error) {
	var balance models.Balance
	err := db.Where("owner_phone = ?", owner).First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance = models.Balance{OwnerPhone: owner}
	if err := db.Create(&balance).Error; err != nil {
		return nil, err
	}
	return &balance, nil
}
