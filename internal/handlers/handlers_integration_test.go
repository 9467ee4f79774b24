package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"lapak/internal/handlers"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds the full API over a per-test in-memory SQLite database,
// seeded with two sellers, a customer and a small catalog. The checkout
// publisher is left nil; closing a cart must succeed without a broker.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	seed := []interface{}{
		&models.User{ID: 1, Username: "TokoBagus", Email: "bagus@example.com", PhoneNumber: "0812-1111", UID: "uid-seller-1", Seller: true},
		&models.User{ID: 2, Username: "budi", Email: "budi@example.com", UID: "uid-budi"},
		&models.User{ID: 3, Username: "WarungAna", Email: "ana@example.com", PhoneNumber: "0812-3333", UID: "uid-seller-3", Seller: true},
		&models.Category{ID: 1, Name: "Electronics"},
		&models.Category{ID: 2, Name: "Kitchen"},
		&models.Product{ID: 1, Title: "Desk Lamp", Description: "Adjustable arm", Price: decimal.RequireFromString("15.99"), CategoryID: 1, SellerID: 1},
		&models.Product{ID: 2, Title: "Copper Kettle", Description: "Stovetop", Price: decimal.RequireFromString("49.50"), CategoryID: 2, SellerID: 3},
		&models.Product{ID: 3, Title: "Ceramic Mug", Description: "Hand glazed", Price: decimal.RequireFromString("10.00"), CategoryID: 2, SellerID: 1},
	}
	for _, record := range seed {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(orderRepo, productRepo, nil)
	queryService := services.NewQueryService(orderRepo, productRepo, userRepo)

	app := fiber.New()
	api := app.Group("/api")
	handlers.NewUserHandler(userService, queryService).RegisterRoutes(api)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api)
	handlers.NewProductHandler(productService, queryService).RegisterRoutes(api)
	handlers.NewCartHandler(cartService).RegisterRoutes(api)
	handlers.NewOrderHandler(queryService).RegisterRoutes(api)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, raw
}

func TestCheckoutFlow(t *testing.T) {
	app := setupApp(t)

	// Resolving the cart is idempotent and returns no body.
	status, _ := doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, raw := doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var cart map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &cart))
	cartID := uint(cart["id"].(float64))
	assert.NotZero(t, cartID)
	assert.Equal(t, false, cart["closed"])
	assert.Equal(t, "none", cart["paymentType"])

	// Add two products; repeating an add leaves the set unchanged.
	addTarget := fmt.Sprintf("/api/orders/%d/products", cartID)
	for _, productID := range []uint{1, 3, 1} {
		status, _ = doRequest(t, app, "POST", addTarget, fiber.Map{"productId": productID})
		assert.Equal(t, fiber.StatusNoContent, status)
	}

	status, raw = doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Len(t, cart["products"], 2)

	// Checkout.
	closeBody := fiber.Map{"id": cartID, "paymentType": "Visa", "shipping": true}
	status, raw = doRequest(t, app, "PUT", "/api/cart/close", closeBody)
	assert.Equal(t, fiber.StatusOK, status)
	var closed map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &closed))
	assert.Equal(t, true, closed["closed"])
	assert.Equal(t, "Visa", closed["paymentType"])
	assert.Equal(t, true, closed["shipping"])
	assert.Equal(t, "25.99", closed["orderTotal"])
	assert.Len(t, closed["products"], 2)

	// A second close of the same order reports not found.
	status, _ = doRequest(t, app, "PUT", "/api/cart/close", closeBody)
	assert.Equal(t, fiber.StatusNotFound, status)

	// The completed order shows up in the purchase history.
	status, raw = doRequest(t, app, "GET", "/api/orders/customer/2/completed", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var history []map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &history))
	assert.Len(t, history, 1)

	// The customer's next cart is a fresh one.
	status, _ = doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	status, raw = doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.NotEqual(t, cartID, uint(cart["id"].(float64)))
	assert.Empty(t, cart["products"])
}

func TestCloseEmptyCart(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, raw := doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var cart map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &cart))
	cartID := uint(cart["id"].(float64))

	status, raw = doRequest(t, app, "PUT", "/api/cart/close", fiber.Map{"id": cartID, "paymentType": "Visa"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "Cart has no products")

	// The cart stayed open.
	status, raw = doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Equal(t, cartID, uint(cart["id"].(float64)))
}

func TestGetCartWithoutOpenOrder(t *testing.T) {
	app := setupApp(t)

	status, raw := doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "null", string(raw))
}

func TestOrderProductLinks(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	_, raw := doRequest(t, app, "GET", "/api/cart/2", nil)
	var cart map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &cart))
	cartID := uint(cart["id"].(float64))

	// Linking against a missing order or product reports not found.
	status, _ = doRequest(t, app, "POST", "/api/orders/9999/products", fiber.Map{"productId": 1})
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/api/orders/%d/products", cartID), fiber.Map{"productId": 9999})
	assert.Equal(t, fiber.StatusNotFound, status)

	// Removing a link that was never made is a quiet no-op.
	status, _ = doRequest(t, app, "DELETE", fmt.Sprintf("/api/orders/%d/products/3", cartID), nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	// Add then remove round-trips back to an empty cart.
	status, _ = doRequest(t, app, "POST", fmt.Sprintf("/api/orders/%d/products", cartID), fiber.Map{"productId": 1})
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = doRequest(t, app, "DELETE", fmt.Sprintf("/api/orders/%d/products/1", cartID), nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	_, raw = doRequest(t, app, "GET", "/api/cart/2", nil)
	assert.NoError(t, json.Unmarshal(raw, &cart))
	assert.Empty(t, cart["products"])
}

func TestOrdersBySellerProjection(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	_, raw := doRequest(t, app, "GET", "/api/cart/2", nil)
	var cart map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &cart))
	cartID := uint(cart["id"].(float64))

	// Products from both sellers land in the same order.
	for _, productID := range []uint{1, 2, 3} {
		status, _ = doRequest(t, app, "POST", fmt.Sprintf("/api/orders/%d/products", cartID), fiber.Map{"productId": productID})
		assert.Equal(t, fiber.StatusNoContent, status)
	}

	// Seller 3 sees the order with only their own product in it.
	status, raw = doRequest(t, app, "GET", "/api/orders/seller/3", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var orders []models.Order
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Len(t, orders, 1)
	assert.Len(t, orders[0].Products, 1)
	assert.Equal(t, uint(2), orders[0].Products[0].ID)

	// Seller 1 sees the same order narrowed to their two products.
	status, raw = doRequest(t, app, "GET", "/api/orders/seller/1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Len(t, orders, 1)
	assert.Len(t, orders[0].Products, 2)

	// A seller with no ordered products gets an empty list.
	status, raw = doRequest(t, app, "GET", "/api/orders/seller/99", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &orders))
	assert.Empty(t, orders)
}

func TestProductsSoldBySeller(t *testing.T) {
	app := setupApp(t)

	// Nothing sold before any checkout completes.
	status, raw := doRequest(t, app, "GET", "/api/products/sold/1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Empty(t, products)

	status, _ = doRequest(t, app, "POST", "/api/cart/new/2", nil)
	assert.Equal(t, fiber.StatusNoContent, status)
	_, raw = doRequest(t, app, "GET", "/api/cart/2", nil)
	var cart map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &cart))
	cartID := uint(cart["id"].(float64))

	for _, productID := range []uint{1, 2} {
		status, _ = doRequest(t, app, "POST", fmt.Sprintf("/api/orders/%d/products", cartID), fiber.Map{"productId": productID})
		assert.Equal(t, fiber.StatusNoContent, status)
	}
	status, _ = doRequest(t, app, "PUT", "/api/cart/close", fiber.Map{"id": cartID, "paymentType": "Visa", "shipping": true})
	assert.Equal(t, fiber.StatusOK, status)

	// Only the seller's own product from the completed order counts.
	status, raw = doRequest(t, app, "GET", "/api/products/sold/1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 1)
	assert.Equal(t, uint(1), products[0].ID)
}

func TestSearchProducts(t *testing.T) {
	app := setupApp(t)

	// Title match, case-insensitive.
	status, raw := doRequest(t, app, "GET", "/api/products/search/MUG", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var products []models.Product
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 1)
	assert.Equal(t, "Ceramic Mug", products[0].Title)

	// Category name match.
	status, raw = doRequest(t, app, "GET", "/api/products/search/kitchen", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 2)

	// Seller name match.
	status, raw = doRequest(t, app, "GET", "/api/products/search/warungana", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Len(t, products, 1)
	assert.Equal(t, uint(2), products[0].ID)

	// No match yields an empty array, not an error.
	status, raw = doRequest(t, app, "GET", "/api/products/search/zzz", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &products))
	assert.Empty(t, products)
}

func TestSearchSellers(t *testing.T) {
	app := setupApp(t)

	status, raw := doRequest(t, app, "GET", "/api/sellers/search/tokobagus", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var sellers []models.User
	assert.NoError(t, json.Unmarshal(raw, &sellers))
	assert.Len(t, sellers, 1)
	assert.Equal(t, uint(1), sellers[0].ID)

	// Phone fragments match too; the plain customer never appears.
	status, raw = doRequest(t, app, "GET", "/api/sellers/search/0812", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &sellers))
	assert.Len(t, sellers, 2)

	status, raw = doRequest(t, app, "GET", "/api/sellers/search/budi", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.NoError(t, json.Unmarshal(raw, &sellers))
	assert.Empty(t, sellers)
}

func TestCheckUser(t *testing.T) {
	app := setupApp(t)

	status, raw := doRequest(t, app, "POST", "/api/checkuser/uid-budi", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var user models.User
	assert.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, "budi", user.Username)

	status, _ = doRequest(t, app, "POST", "/api/checkuser/uid-nobody", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRegisterAndUpdateUser(t *testing.T) {
	app := setupApp(t)

	body := fiber.Map{"username": "sari", "email": "sari@example.com", "phoneNumber": "0812-9999"}
	status, raw := doRequest(t, app, "POST", "/api/users/new", body)
	assert.Equal(t, fiber.StatusCreated, status)
	var created models.User
	assert.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.UID)
	assert.False(t, created.Seller)

	update := fiber.Map{"username": "sari_baru", "email": "sari.baru@example.com", "seller": true}
	status, raw = doRequest(t, app, "PUT", fmt.Sprintf("/api/users/update/%d", created.ID), update)
	assert.Equal(t, fiber.StatusOK, status)
	var updated models.User
	assert.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "sari_baru", updated.Username)
	assert.True(t, updated.Seller)
	assert.Equal(t, created.UID, updated.UID)

	status, _ = doRequest(t, app, "PUT", "/api/users/update/9999", update)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProductCRUD(t *testing.T) {
	app := setupApp(t)

	body := fiber.Map{"title": "Rattan Basket", "description": "Woven", "price": "22.75", "categoryId": 2, "sellerId": 1}
	status, raw := doRequest(t, app, "POST", "/api/products", body)
	assert.Equal(t, fiber.StatusCreated, status)
	var created models.Product
	assert.NoError(t, json.Unmarshal(raw, &created))
	assert.NotZero(t, created.ID)
	assert.True(t, decimal.RequireFromString("22.75").Equal(created.Price))

	// A dangling category is rejected before it reaches the table.
	bad := fiber.Map{"title": "Ghost Item", "description": "x", "price": "1.00", "categoryId": 999, "sellerId": 1}
	status, _ = doRequest(t, app, "POST", "/api/products", bad)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, raw = doRequest(t, app, "GET", fmt.Sprintf("/api/products/%d", created.ID), nil)
	assert.Equal(t, fiber.StatusOK, status)
	var fetched models.Product
	assert.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, "Rattan Basket", fetched.Title)

	status, _ = doRequest(t, app, "DELETE", fmt.Sprintf("/api/products/%d", created.ID), nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = doRequest(t, app, "GET", fmt.Sprintf("/api/products/%d", created.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestFeaturedCategories(t *testing.T) {
	app := setupApp(t)

	status, raw := doRequest(t, app, "GET", "/api/categories/featured", nil)
	assert.Equal(t, fiber.StatusOK, status)
	var categories []models.Category
	assert.NoError(t, json.Unmarshal(raw, &categories))
	assert.Len(t, categories, 2)
	for _, category := range categories {
		assert.LessOrEqual(t, len(category.Products), services.FeaturedProductsPerCategory)
	}
}
