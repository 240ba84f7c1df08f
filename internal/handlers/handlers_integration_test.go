package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/storage"
	"storefront/pkg/tokenstore"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const strongPassword = "Correct-Horse-Battery-9"

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

// setupApp sets up a Fiber app for testing with in-memory SQLite and all handlers/services.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	// Initialize Repositories
	userRepo := repositories.NewGORMUserRepository(db)
	roleRepo := repositories.NewGORMRoleRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	require.NoError(t, roleRepo.EnsureNames([]string{"customer", "manager"}))

	// Initialize Services
	authService := services.NewAuthService(userRepo, roleRepo, tokenstore.NewMemory(), services.AuthConfig{
		Secret:             "integration-test-secret",
		AccessTTL:          time.Minute,
		RefreshTTL:         time.Hour,
		PasswordMinEntropy: 50,
	})
	productService := services.NewProductService(productRepo, categoryRepo, services.NewImageImporter(disk, 5*time.Second), disk)
	orderService := services.NewOrderService(productRepo, repositories.NewGORMProductCardRepository(db), services.LogNotifier{}, "Test Shop")
	contentService := services.NewContentService(
		repositories.NewGORMListRepository[models.Banner](db),
		repositories.NewGORMListRepository[models.Service](db),
		repositories.NewGORMListRepository[models.OurPartner](db),
		repositories.NewGORMListRepository[models.Consultant](db),
	)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	protect := middleware.AuthRequired(authService)
	throttle := middleware.NewRateLimiter(1000, 1000).Handler()
	media := handlers.Media{}

	handlers.NewAuthHandler(authService).RegisterRoutes(app, protect)
	handlers.NewProductHandler(productService, media).RegisterRoutes(app, protect)
	handlers.NewCategoryHandler(services.NewCategoryService(categoryRepo), productService, media).RegisterRoutes(app, protect)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app, throttle)
	handlers.NewContentHandler(contentService, media).RegisterRoutes(app, throttle)

	t.Cleanup(orderService.Wait)
	return &testEnv{app: app, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		jsonBody, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1) // -1 for no timeout
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, buf.Bytes()
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

// signup registers a user and returns its access token.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"first_name": "Test",
		"last_name":  "User",
		"username":   username,
		"password":   strongPassword,
		"groups":     1,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return decode(t, body)["access"].(string)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func (e *testEnv) seedProduct(t *testing.T, name, price string) models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		Price:     mustDecimal(t, price),
		PriceType: models.PriceRUB,
	}
	require.NoError(t, e.db.Create(&product).Error)
	return product
}

func TestAuthFlow(t *testing.T) {
	env := setupApp(t)

	// Signup returns a token pair
	resp, body := env.do(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"username":   "ada",
		"password":   strongPassword,
		"groups":     1,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	pair := decode(t, body)
	assert.NotEmpty(t, pair["access"])
	assert.NotEmpty(t, pair["refresh"])

	// Duplicate username
	resp, body = env.do(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"username":   "ada",
		"password":   strongPassword,
		"groups":     1,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "A user with that username already exists.")

	// Signin
	resp, body = env.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"username": "ada",
		"password": strongPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access := decode(t, body)["access"].(string)

	resp, _ = env.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"username": "ada",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Profile
	resp, body = env.do(t, http.MethodGet, "/auth/profile", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode(t, body)
	assert.Equal(t, "ada", profile["username"])
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "customer"}}, profile["groups"])
	assert.NotContains(t, profile, "password")

	resp, body = env.do(t, http.MethodPut, "/auth/profile", map[string]string{"first_name": "Augusta"}, access)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Augusta", decode(t, body)["first_name"])

	// Refresh rotates, the old refresh token stops working
	resp, body = env.do(t, http.MethodPost, "/auth/token/refresh", map[string]string{"refresh": pair["refresh"].(string)}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := decode(t, body)
	assert.NotEmpty(t, rotated["refresh"])

	resp, _ = env.do(t, http.MethodPost, "/auth/token/refresh", map[string]string{"refresh": pair["refresh"].(string)}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Signout
	resp, _ = env.do(t, http.MethodPost, "/auth/signout", map[string]string{"refresh": rotated["refresh"].(string)}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete account, the access token no longer resolves a user
	resp, body = env.do(t, http.MethodDelete, "/auth/profile", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User deleted", decode(t, body)["message"])

	resp, _ = env.do(t, http.MethodGet, "/auth/profile", nil, access)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupRejections(t *testing.T) {
	env := setupApp(t)

	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
		field   string
	}{
		{
			name: "unexpected fields",
			body: map[string]interface{}{
				"first_name": "A", "last_name": "B", "username": "ab", "password": strongPassword, "groups": 1,
				"is_staff": true, "email": "x@example.com",
			},
			message: "Unexpected fields: email, is_staff",
		},
		{
			name: "unknown role",
			body: map[string]interface{}{
				"first_name": "A", "last_name": "B", "username": "ab", "password": strongPassword, "groups": 99,
			},
			field: "groups",
		},
		{
			name: "weak password",
			body: map[string]interface{}{
				"first_name": "A", "last_name": "B", "username": "ab", "password": "abc", "groups": 1,
			},
			field: "password",
		},
		{
			name: "missing role",
			body: map[string]interface{}{
				"first_name": "A", "last_name": "B", "username": "ab", "password": strongPassword,
			},
			field: "groups",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, http.MethodPost, "/auth/signup", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			out := decode(t, body)
			if tt.message != "" {
				assert.Equal(t, tt.message, out["message"])
			}
			if tt.field != "" {
				require.Contains(t, out, "errors")
				assert.Contains(t, out["errors"], tt.field)
			}
		})
	}
}

func TestPasswordLengthLimits(t *testing.T) {
	env := setupApp(t)

	// 78 bytes, past what bcrypt can hash
	overlong := strings.Repeat("Correct-Horse-", 5) + "Battery9"
	// 66 characters, accepted at signup and at signin
	long := strings.Repeat("Correct-Horse-", 4) + "Battery9ab"

	resp, body := env.do(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"first_name": "A", "last_name": "B", "username": "overlong", "password": overlong, "groups": 1,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	assert.Contains(t, decode(t, body)["errors"], "password")

	resp, body = env.do(t, http.MethodPost, "/auth/signup", map[string]interface{}{
		"first_name": "A", "last_name": "B", "username": "x", "password": long, "groups": 1,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	access := decode(t, body)["access"].(string)

	resp, body = env.do(t, http.MethodPost, "/auth/signin", map[string]string{
		"username": "x",
		"password": long,
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = env.do(t, http.MethodPut, "/auth/profile", map[string]string{"password": overlong}, access)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	assert.Contains(t, decode(t, body)["errors"], "password")
}

func TestProductLifecycle(t *testing.T) {
	env := setupApp(t)
	token := env.signup(t, "manager")

	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG fake image"))
	}))
	defer images.Close()

	// Writes require authentication
	resp, _ := env.do(t, http.MethodPost, "/product/", map[string]interface{}{"name": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Unexpected fields are rejected before anything else
	resp, body := env.do(t, http.MethodPost, "/product/", map[string]interface{}{"name": "x", "stock": 5}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unexpected fields: stock", decode(t, body)["message"])

	// Unknown sub-category
	resp, body = env.do(t, http.MethodPost, "/product/", map[string]interface{}{
		"name":         "Lamp",
		"price":        10,
		"sub_category": 42,
		"images_set":   []string{},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `Invalid pk \"42\" - object does not exist.`)

	// Create with one good and one broken image URL
	resp, body = env.do(t, http.MethodPost, "/product/", map[string]interface{}{
		"name":            "Lamp",
		"description":     "Desk lamp",
		"price":           "25.50",
		"quantity":        3,
		"characteristics": map[string]string{"color": "white"},
		"images_set":      []string{images.URL + "/lamp.png", images.URL + "/missing.png"},
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode(t, body)
	assert.Equal(t, "RUB", created["price_type"])
	assert.Equal(t, 25.5, created["price"])
	assert.Equal(t, []interface{}{}, created["category"])
	assert.Nil(t, created["image"])
	imagesSet := created["images_set"].([]interface{})
	require.Len(t, imagesSet, 1)
	imageURL := imagesSet[0].(map[string]interface{})["image"].(string)
	assert.True(t, strings.HasPrefix(imageURL, "http://example.com/media/products/"), imageURL)
	assert.True(t, strings.HasSuffix(imageURL, "_lamp.png"), imageURL)

	id := uint(created["id"].(float64))

	// Detail
	resp, body = env.do(t, http.MethodGet, fmt.Sprintf("/product/%d", id), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lamp", decode(t, body)["name"])

	resp, _ = env.do(t, http.MethodGet, "/product/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete
	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/product/%d", id), nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, fmt.Sprintf("/product/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var imageCount int64
	require.NoError(t, env.db.Model(&models.ProductImage{}).Count(&imageCount).Error)
	assert.Zero(t, imageCount)
}

func TestProductListing(t *testing.T) {
	env := setupApp(t)
	env.seedProduct(t, "Blue Chair", "30")
	env.seedProduct(t, "Red Chair", "10")
	env.seedProduct(t, "Table", "20")

	resp, body := env.do(t, http.MethodGet, "/product/", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode(t, body)
	assert.Equal(t, float64(3), page["count"])
	assert.Nil(t, page["next"])
	assert.Nil(t, page["previous"])
	results := page["results"].([]interface{})
	require.Len(t, results, 3)
	assert.Equal(t, "Red Chair", results[0].(map[string]interface{})["name"])

	// Descending by price and filtered by name
	resp, body = env.do(t, http.MethodGet, "/product/?name=CHAIR&is_max_min=1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results = decode(t, body)["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, "Blue Chair", results[0].(map[string]interface{})["name"])

	// Pagination links
	resp, body = env.do(t, http.MethodGet, "/product/?limit=2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decode(t, body)
	assert.Equal(t, "http://example.com/product/?limit=2&page=2", page["next"])

	resp, body = env.do(t, http.MethodGet, "/product/?limit=2&page=2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decode(t, body)
	assert.Equal(t, "http://example.com/product/?limit=2", page["previous"])
	assert.Len(t, page["results"], 1)

	for _, bad := range []string{"page=3&limit=2", "page=abc", "page=0"} {
		resp, body = env.do(t, http.MethodGet, "/product/?"+bad, nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, bad)
		assert.Equal(t, "Invalid page.", decode(t, body)["message"], bad)
	}

	// Popular products are the ones that were ordered
	resp, _ = env.do(t, http.MethodGet, "/product/?is_popular=true", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategories(t *testing.T) {
	env := setupApp(t)
	token := env.signup(t, "manager")

	resp, body := env.do(t, http.MethodPost, "/categories", map[string]interface{}{
		"name":         "Furniture",
		"sub_category": []map[string]string{{"title": "Chairs"}, {"title": "Tables"}},
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "Successfully added", decode(t, body)["msg"])

	resp, body = env.do(t, http.MethodPost, "/categories", map[string]interface{}{
		"name":         "Lighting",
		"sub_category": []map[string]string{{"title": "Lamps", "slug": "lamps"}},
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unexpected fields: slug", decode(t, body)["message"])

	resp, body = env.do(t, http.MethodGet, "/categories", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mains []struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		SubCategory []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"sub_category"`
	}
	require.NoError(t, json.Unmarshal(body, &mains))
	require.Len(t, mains, 1)
	assert.Equal(t, "Furniture", mains[0].Name)
	require.Len(t, mains[0].SubCategory, 2)

	chairs := mains[0].SubCategory[0].ID
	product := models.Product{Name: "Stool", Price: mustDecimal(t, "15"), PriceType: models.PriceRUB, SubCategoryID: &chairs}
	require.NoError(t, env.db.Create(&product).Error)
	env.seedProduct(t, "Uncategorized", "5")

	resp, body = env.do(t, http.MethodGet, fmt.Sprintf("/category_product/%d", chairs), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode(t, body)
	assert.Equal(t, float64(1), page["count"])
	item := page["results"].([]interface{})[0].(map[string]interface{})
	category := item["category"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Furniture", category["main_category_name"])

	resp, body = env.do(t, http.MethodGet, fmt.Sprintf("/main/categories/products/%d", mains[0].ID), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decode(t, body)["count"])

	resp, _ = env.do(t, http.MethodGet, "/category_product/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = env.do(t, http.MethodGet, "/main/categories/products/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderIntake(t *testing.T) {
	env := setupApp(t)
	lamp := env.seedProduct(t, "Lamp", "25.50")
	desk := env.seedProduct(t, "Desk", "100")

	order := map[string]interface{}{
		"full_name":   "Grace Hopper",
		"email":       "grace@example.com",
		"phone":       "+100200300",
		"address":     "Main street 1",
		"total_price": 151,
		"product_data": []map[string]interface{}{
			{"product": lamp.ID, "quantity": 2},
			{"product": desk.ID, "quantity": 1},
		},
	}
	resp, body := env.do(t, http.MethodPost, "/card", order, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var cards []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, float64(lamp.ID), cards[0]["product"])
	assert.Equal(t, 51.0, cards[0]["total_price"])
	assert.Equal(t, "RUB", cards[0]["price_type"])
	assert.Equal(t, 100.0, cards[1]["total_price"])

	// Ordered products become popular
	resp, body = env.do(t, http.MethodGet, "/product/?is_rating=1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decode(t, body)["count"])

	// Unknown product persists nothing
	order["product_data"] = []map[string]interface{}{
		{"product": lamp.ID, "quantity": 1},
		{"product": 9999, "quantity": 1},
	}
	resp, body = env.do(t, http.MethodPost, "/card", order, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Product not found", decode(t, body)["message"])

	var count int64
	require.NoError(t, env.db.Model(&models.ProductCard{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// Card totals are snapshots: repricing the catalog leaves them untouched
	require.NoError(t, env.db.Model(&lamp).Updates(map[string]interface{}{"price": "99.99", "price_type": "USD"}).Error)
	var stored []models.ProductCard
	require.NoError(t, env.db.Order("id ASC").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].TotalPrice.Equal(mustDecimal(t, "51")), stored[0].TotalPrice.String())
	assert.Equal(t, models.PriceRUB, stored[0].PriceType)
	assert.True(t, stored[1].TotalPrice.Equal(mustDecimal(t, "100")), stored[1].TotalPrice.String())

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty cart", `{"full_name":"G","email":"g@example.com","phone":"1","total_price":1,"product_data":[]}`, "product_data"},
		{"bad email", `{"full_name":"G","email":"nope","phone":"1","total_price":1,"product_data":[{"product":1,"quantity":1}]}`, "email"},
		{"zero quantity", `{"full_name":"G","email":"g@example.com","phone":"1","total_price":1,"product_data":[{"product":1,"quantity":0}]}`, "product_data[0].quantity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, http.MethodPost, "/card", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			errs, ok := decode(t, body)["errors"].(map[string]interface{})
			require.True(t, ok, string(body))
			assert.Contains(t, errs, tt.field)
		})
	}

	resp, body = env.do(t, http.MethodPost, "/card",
		`{"full_name":"G","email":"g@example.com","phone":"1","total_price":1,"product_data":[{"product":1,"quantity":1,"price":0}]}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unexpected fields: price", decode(t, body)["message"])
}

func TestContent(t *testing.T) {
	env := setupApp(t)
	require.NoError(t, env.db.Create(&models.Banner{Header: "Sale", Image: "banners/sale.png"}).Error)
	require.NoError(t, env.db.Create(&models.Service{Title: "Delivery", Image: "https://cdn.example.com/truck.png"}).Error)
	require.NoError(t, env.db.Create(&models.OurPartner{Name: "Acme"}).Error)

	resp, body := env.do(t, http.MethodGet, "/banner", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var banners []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &banners))
	require.Len(t, banners, 1)
	assert.Equal(t, "http://example.com/media/banners/sale.png", banners[0]["image"])

	resp, body = env.do(t, http.MethodGet, "/service", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"image":"https://cdn.example.com/truck.png"`)

	resp, body = env.do(t, http.MethodGet, "/our_partner", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"Acme"`)

	resp, body = env.do(t, http.MethodPost, "/consultation", map[string]string{
		"name":        "Linus",
		"phone":       "+1",
		"description": "Need a sofa",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.NotZero(t, decode(t, body)["id"])

	resp, body = env.do(t, http.MethodPost, "/consultation", map[string]string{"name": "Linus"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decode(t, body)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "description")
}
