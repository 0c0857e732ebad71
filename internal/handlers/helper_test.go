package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ayushwahile/cloth-store-backend/internal/config"
	"github.com/ayushwahile/cloth-store-backend/internal/database"
	"github.com/ayushwahile/cloth-store-backend/internal/routes"
)

// smsRecorder captures outgoing messages instead of sending them.
type smsRecorder struct {
	messages []recordedSMS
	fail     error
}

type recordedSMS struct {
	To   string
	Body string
}

func (r *smsRecorder) Send(to, body string) error {
	if r.fail != nil {
		return r.fail
	}
	r.messages = append(r.messages, recordedSMS{To: to, Body: body})
	return nil
}

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
	sms *smsRecorder
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		TokenExpires:       time.Hour,
		RazorpayKeyID:      "rzp_test_key",
		RazorpayKeySecret:  "rzp_test_secret",
		PaymentRedirectURL: "https://clothstore.example.com/payment-success",
	}
	for _, fn := range mutate {
		fn(cfg)
	}

	sms := &smsRecorder{}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	routes.Register(app, db, cfg, sms)

	return &testEnv{app: app, db: db, cfg: cfg, sms: sms}
}

func withOwnerPhone(phone string) func(*config.Config) {
	return func(cfg *config.Config) {
		cfg.OwnerPhone = phone
	}
}

func (e *testEnv) request(t *testing.T, method, target string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}

func decodeJSONList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	return out
}
