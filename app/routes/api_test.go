package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/app/routes"
	"github.com/shashiranjanraj/plantnet/pkg/auth"
	"github.com/shashiranjanraj/plantnet/pkg/router"
	"github.com/shashiranjanraj/plantnet/pkg/storage"
)

// newTestHandler mounts the full route table on in-memory stores.
func newTestHandler(t *testing.T) (http.Handler, *repositories.MemoryPlantRepository) {
	t.Helper()
	r := router.New()
	plants := repositories.NewMemoryPlantRepository()
	api := routes.NewAPI(
		repositories.NewMemoryUserRepository(),
		plants,
		repositories.NewMemoryOrderRepository(plants),
	)
	api.Register(r)
	return r.Handler(), plants
}

func sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateToken(email, models.RoleCustomer)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHome(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello from plantNet Server..", rec.Body.String())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/jwt", `{"email":"alice@example.com"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	claims, err := auth.ValidateToken(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
}

func TestLoginRejectsBadEmail(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/jwt", `{"email":"not-an-email"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/logout", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestGuardedRoutesRequireSession(t *testing.T) {
	h, _ := newTestHandler(t)

	guarded := []struct{ method, path string }{
		{http.MethodPost, "/plants"},
		{http.MethodPost, "/plants/image"},
		{http.MethodPatch, "/plants/quantity/6565b8f1a2b3c4d5e6f70811"},
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/customer/orders/alice@example.com"},
		{http.MethodDelete, "/customer/orders/6565b8f1a2b3c4d5e6f70811"},
	}
	for _, g := range guarded {
		rec := doJSON(t, h, g.method, g.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", g.method, g.path)
		assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())
	}
}

func TestPlantLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := sessionCookie(t, "seller@example.com")

	// Create
	rec := doJSON(t, h, http.MethodPost, "/plants",
		`{"name":"Monstera","category":"Indoor","price":24.99,"quantity":10}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, true, created["acknowledged"])
	plantID, ok := created["insertedId"].(string)
	require.True(t, ok)

	// Public listing includes it, seller stamped from the session.
	rec = doJSON(t, h, http.MethodGet, "/plants", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing []models.Plant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing, 1)
	assert.Equal(t, "Monstera", listing[0].Name)
	require.NotNil(t, listing[0].Seller)
	assert.Equal(t, "seller@example.com", listing[0].Seller.Email)

	// Public detail
	rec = doJSON(t, h, http.MethodGet, "/plants/"+plantID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plant))
	assert.Equal(t, 10, plant.Quantity)

	// Unknown detail
	rec = doJSON(t, h, http.MethodGet, "/plants/ffffffffffffffffffffffff", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Plant not found"}`, rec.Body.String())
}

func TestStockAdjustment(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := sessionCookie(t, "seller@example.com")

	rec := doJSON(t, h, http.MethodPost, "/plants",
		`{"name":"Lavender","category":"Outdoor","price":9.75,"quantity":5}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	plantID := decode(t, rec)["insertedId"].(string)

	// Increase
	rec = doJSON(t, h, http.MethodPatch, "/plants/quantity/"+plantID,
		`{"quantityUpdate":3,"status":"increase"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode(t, rec)
	assert.EqualValues(t, 1, result["matchedCount"])
	assert.EqualValues(t, 1, result["modifiedCount"])

	// Decrease past zero floors at zero.
	rec = doJSON(t, h, http.MethodPatch, "/plants/quantity/"+plantID,
		`{"quantityUpdate":100,"status":"decrease"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/plants/"+plantID, "", nil)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plant))
	assert.Equal(t, 0, plant.Quantity)

	// Unknown id
	rec = doJSON(t, h, http.MethodPatch, "/plants/quantity/ffffffffffffffffffffffff",
		`{"quantityUpdate":1,"status":"increase"}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Zero delta fails validation.
	rec = doJSON(t, h, http.MethodPatch, "/plants/quantity/"+plantID,
		`{"quantityUpdate":0,"status":"increase"}`, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestOrderWorkflow(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := sessionCookie(t, "carol@example.com")

	rec := doJSON(t, h, http.MethodPost, "/plants",
		`{"name":"Fiddle Leaf Fig","category":"Indoor","image":"https://img.example.com/fig.jpg","price":39,"quantity":5}`,
		cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	plantID := decode(t, rec)["insertedId"].(string)

	orderBody := fmt.Sprintf(
		`{"plantId":%q,"customer":{"email":"carol@example.com","name":"Carol"},"price":39,"quantity":1,"address":"12 Garden Lane"}`,
		plantID)

	// Place
	rec = doJSON(t, h, http.MethodPost, "/orders", orderBody, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	orderID := decode(t, rec)["insertedId"].(string)

	// Order for a nonexistent plant is rejected.
	rec = doJSON(t, h, http.MethodPost, "/orders",
		`{"plantId":"ffffffffffffffffffffffff","customer":{"email":"carol@example.com"},"price":1,"quantity":1}`,
		cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Plant not found"}`, rec.Body.String())

	// History carries the joined plant fields flattened into the row.
	rec = doJSON(t, h, http.MethodGet, "/customer/orders/carol@example.com", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Fiddle Leaf Fig", rows[0]["name"])
	assert.Equal(t, "Indoor", rows[0]["category"])
	assert.Equal(t, "https://img.example.com/fig.jpg", rows[0]["image"])
	assert.Equal(t, "Pending", rows[0]["status"])
	assert.NotContains(t, rows[0], "plant")

	// Cancel
	rec = doJSON(t, h, http.MethodDelete, "/customer/orders/"+orderID, "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode(t, rec)
	assert.EqualValues(t, 1, result["deletedCount"])

	// Cancelling again is a 404.
	rec = doJSON(t, h, http.MethodDelete, "/customer/orders/"+orderID, "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Order not found"}`, rec.Body.String())

	// Malformed id is also a 404, not a 500.
	rec = doJSON(t, h, http.MethodDelete, "/customer/orders/not-hex", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelShippedOrder(t *testing.T) {
	h, _ := newTestHandler(t)
	cookie := sessionCookie(t, "carol@example.com")

	rec := doJSON(t, h, http.MethodPost, "/plants",
		`{"name":"Bonsai","category":"Indoor","price":55,"quantity":2}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	plantID := decode(t, rec)["insertedId"].(string)

	rec = doJSON(t, h, http.MethodPost, "/orders", fmt.Sprintf(
		`{"plantId":%q,"customer":{"email":"carol@example.com"},"price":55,"quantity":1,"status":"Shipped"}`,
		plantID), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	orderID := decode(t, rec)["insertedId"].(string)

	rec = doJSON(t, h, http.MethodDelete, "/customer/orders/"+orderID, "", cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"message":"You can't delete/cancel once the product shipped"}`, rec.Body.String())

	// Still retrievable through history.
	rec = doJSON(t, h, http.MethodGet, "/customer/orders/carol@example.com", "", cookie)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
}

func TestUserUpsert(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/users/eve@example.com", `{"name":"Eve"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode(t, rec)
	assert.Equal(t, true, first["acknowledged"])
	assert.NotEmpty(t, first["insertedId"])

	// Second call returns the stored record unchanged.
	rec = doJSON(t, h, http.MethodPost, "/users/eve@example.com", `{"name":"Evelyn"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode(t, rec)
	assert.Equal(t, "eve@example.com", second["email"])
	assert.Equal(t, "Eve", second["name"])
	assert.Equal(t, "customer", second["role"])
	assert.NotContains(t, second, "acknowledged")
}

// memDisk is an in-memory storage.Disk for the upload test.
type memDisk struct{ files map[string][]byte }

func (d *memDisk) Put(path string, content []byte) error { d.files[path] = content; return nil }
func (d *memDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.files[path] = data
	return nil
}
func (d *memDisk) Get(path string) ([]byte, error) { return d.files[path], nil }
func (d *memDisk) Exists(path string) bool         { _, ok := d.files[path]; return ok }
func (d *memDisk) Delete(path string) error        { delete(d.files, path); return nil }
func (d *memDisk) URL(path string) string          { return "http://cdn.test/" + path }

func TestUploadImage(t *testing.T) {
	disk := &memDisk{files: map[string][]byte{}}
	storage.RegisterDisk("mem", disk)

	h, _ := newTestHandler(t)
	cookie := sessionCookie(t, "seller@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "monstera.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/plants/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	url := decode(t, rec)["url"].(string)
	assert.True(t, strings.HasPrefix(url, "http://cdn.test/plants/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Len(t, disk.files, 1)
}

func TestUploadImageRejectsUnknownType(t *testing.T) {
	disk := &memDisk{files: map[string][]byte{}}
	storage.RegisterDisk("mem", disk)

	h, _ := newTestHandler(t)
	cookie := sessionCookie(t, "seller@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "malware.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/plants/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, disk.files)
}
