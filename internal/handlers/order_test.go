package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushwahile/cloth-store-backend/internal/models"
)

func createForm(t *testing.T, env *testEnv, phone string, items ...map[string]any) *http.Response {
	return env.request(t, http.MethodPost, "/forms", map[string]any{
		"phone":    phone,
		"name":     "Asha",
		"date":     "2025-01-01",
		"products": items,
	})
}

func item(brand, name string, price float64) map[string]any {
	return map[string]any{
		"brand": brand,
		"name":  name,
		"size":  "M",
		"price": price,
		"floor": "1st",
	}
}

func TestCreateFormAndAppend(t *testing.T) {
	env := newTestEnv(t)

	resp := createForm(t, env, "9876543210", item("Levis", "Jeans", 100))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, "9876543210", body["phone"])
	assert.Len(t, body["products"], 1)

	// check the first item so we can assert the flag survives appends
	resp = env.request(t, http.MethodPut, "/forms/9876543210/check-product",
		map[string]any{"productIndex": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = createForm(t, env, "9876543210", item("Nike", "Shirt", 250), item("Puma", "Cap", 75))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeJSON(t, resp)

	products := body["products"].([]any)
	require.Len(t, products, 3)
	first := products[0].(map[string]any)
	assert.Equal(t, "Jeans", first["name"])
	assert.Equal(t, true, first["checked"])
	assert.Equal(t, "Cap", products[2].(map[string]any)["name"])
}

func TestGetFormNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/forms/1112223334", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckProductBounds(t *testing.T) {
	env := newTestEnv(t)
	createForm(t, env, "9876543210", item("Levis", "Jeans", 100)).Body.Close()

	resp := env.request(t, http.MethodPut, "/forms/9876543210/check-product",
		map[string]any{"productIndex": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPut, "/forms/9876543210/check-product",
		map[string]any{"productIndex": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPut, "/forms/9876543210/check-product", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteProductShiftsPositions(t *testing.T) {
	env := newTestEnv(t)
	createForm(t, env, "9876543210",
		item("A", "First", 10), item("B", "Second", 20), item("C", "Third", 30)).Body.Close()

	// index equal to the item count is out of bounds
	resp := env.request(t, http.MethodDelete, "/forms/9876543210/products/3", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodDelete, "/forms/9876543210/products/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/forms/9876543210", nil)
	body := decodeJSON(t, resp)
	products := body["products"].([]any)
	require.Len(t, products, 2)
	assert.Equal(t, "First", products[0].(map[string]any)["name"])
	assert.Equal(t, "Third", products[1].(map[string]any)["name"])
}

func TestMarkPaidFinalizesOrder(t *testing.T) {
	env := newTestEnv(t)
	createForm(t, env, "9876543210",
		item("A", "Shirt", 100), item("B", "Jeans", 250), item("C", "Cap", 75)).Body.Close()

	resp := env.request(t, http.MethodPut, "/forms/9876543210/paid",
		map[string]any{"paymentDate": "2025-01-02"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["paid"])
	assert.Equal(t, "2025-01-02", body["paymentDate"])

	// sale snapshot with summed total
	resp = env.request(t, http.MethodGet, "/sells?phone=9876543210", nil)
	sales := decodeJSONList(t, resp)
	require.Len(t, sales, 1)
	assert.Equal(t, float64(425), sales[0]["totalPrice"])
	assert.Equal(t, "2025-01-02", sales[0]["paymentDate"])
	assert.Len(t, sales[0]["products"], 3)

	// balance accrued by exactly the total
	var balance models.Balance
	require.NoError(t, env.db.Where("owner_phone = ?", models.DefaultOwnerID).First(&balance).Error)
	assert.Equal(t, float64(425), balance.Amount)

	// the form is gone and the phone is reusable
	resp = env.request(t, http.MethodGet, "/forms/9876543210", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = createForm(t, env, "9876543210", item("D", "Socks", 5))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestMarkPaidUnknownPhone(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPut, "/forms/0001112223/paid",
		map[string]any{"paymentDate": "2025-01-02"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMarkPaidScenario(t *testing.T) {
	env := newTestEnv(t)
	createForm(t, env, "9876543210", item("X", "A", 50), item("Y", "B", 30)).Body.Close()

	resp := env.request(t, http.MethodPut, "/forms/9876543210/paid",
		map[string]any{"paymentDate": "2025-01-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["paid"])

	resp = env.request(t, http.MethodGet, "/sells?phone=9876543210", nil)
	sales := decodeJSONList(t, resp)
	require.Len(t, sales, 1)
	assert.Equal(t, float64(80), sales[0]["totalPrice"])
	assert.Equal(t, "2025-01-01", sales[0]["paymentDate"])

	resp = env.request(t, http.MethodGet, "/forms/9876543210", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListFormsProjectionAndOwnerFilter(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/forms", map[string]any{
		"phone": "1111111111", "name": "A", "date": "2025-01-01",
		"ownerPhone": "9999999999",
		"products":   []map[string]any{item("A", "Shirt", 10)},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = env.request(t, http.MethodPost, "/forms", map[string]any{
		"phone": "2222222222", "name": "B", "date": "2025-01-01",
		"ownerPhone": "8888888888",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/forms", nil)
	all := decodeJSONList(t, resp)
	assert.Len(t, all, 2)

	resp = env.request(t, http.MethodGet, "/forms?owner=9999999999", nil)
	filtered := decodeJSONList(t, resp)
	require.Len(t, filtered, 1)
	assert.Equal(t, "1111111111", filtered[0]["phone"])

	resp = env.request(t, http.MethodGet, "/forms?phonesOnly=true", nil)
	body := decodeJSON(t, resp)
	assert.ElementsMatch(t, []any{"1111111111", "2222222222"}, body["phones"])
}

func TestShoppingHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	createForm(t, env, "9876543210", item("A", "Shirt", 10)).Body.Close()
	env.request(t, http.MethodPut, "/forms/9876543210/paid",
		map[string]any{"paymentDate": "2025-01-01"}).Body.Close()

	createForm(t, env, "9876543210", item("B", "Jeans", 20)).Body.Close()
	env.request(t, http.MethodPut, "/forms/9876543210/paid",
		map[string]any{"paymentDate": "2025-01-05"}).Body.Close()

	resp := env.request(t, http.MethodGet, "/shopping/9876543210", nil)
	sales := decodeJSONList(t, resp)
	require.Len(t, sales, 2)
	assert.Equal(t, "2025-01-05", sales[0]["paymentDate"])
	assert.Equal(t, "2025-01-01", sales[1]["paymentDate"])
}
