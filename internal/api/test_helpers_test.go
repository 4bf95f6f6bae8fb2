package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/salesboard/internal/db"
	"github.com/terraincognita07/salesboard/internal/i18n"
	"github.com/terraincognita07/salesboard/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "StrongPass1"

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}

	apiDir := filepath.Dir(testFile)
	internalDir := filepath.Dir(apiDir)
	templatesDir := filepath.Join(internalDir, "templates")
	localesDir := filepath.Join(internalDir, "i18n", "locales")
	databasePath := filepath.Join(t.TempDir(), "salesboard-api-test.db")

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", localesDir)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, "test-secret-key-with-enough-length!", templatesDir, time.UTC, i18nManager, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler
}

func createTestUser(t *testing.T, handler *Handler, username string, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := handler.repositories.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// loginCookie signs in through the form endpoint and returns a Cookie
// header value carrying the session.
func loginCookie(t *testing.T, app *fiber.App, login string) string {
	t.Helper()

	form := url.Values{"login": {login}, "password": {testPassword}}
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	value := responseCookieValue(response.Cookies(), authCookieName)
	if value == "" {
		t.Fatal("expected auth cookie in login response")
	}
	return authCookieName + "=" + value
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, string) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", request.Method, request.URL.Path, err)
	}
	return response, string(body)
}

func authedGET(t *testing.T, app *fiber.App, cookie string, path string) (*http.Response, string) {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, path, nil)
	request.Header.Set("Accept-Language", "en")
	request.Header.Set("Cookie", cookie)
	return doRequest(t, app, request)
}

func readAPIError(t *testing.T, body string) string {
	t.Helper()

	payload := map[string]any{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode error payload %q: %v", body, err)
	}
	message, _ := payload["error"].(string)
	return message
}

// seedSales stores four sales over two months: three drinks and one cake.
func seedSales(t *testing.T, handler *Handler, userID uint) {
	t.Helper()

	coffee, err := handler.repositories.Products.Upsert(nil, models.Product{UserID: userID, Name: "Coffee", Category: "Drinks", SellingPrice: 10})
	if err != nil {
		t.Fatalf("upsert coffee: %v", err)
	}
	tea, err := handler.repositories.Products.Upsert(nil, models.Product{UserID: userID, Name: "Tea", Category: "Drinks", SellingPrice: 5})
	if err != nil {
		t.Fatalf("upsert tea: %v", err)
	}
	cake, err := handler.repositories.Products.Upsert(nil, models.Product{UserID: userID, Name: "Cake", Category: "Bakery", SellingPrice: 30})
	if err != nil {
		t.Fatalf("upsert cake: %v", err)
	}

	sales := []models.Sale{
		{UserID: userID, ProductID: coffee.ID, Quantity: 2, TotalPrice: 20, SaleDate: time.Date(2026, time.January, 5, 10, 0, 0, 0, time.UTC)},
		{UserID: userID, ProductID: coffee.ID, Quantity: 1, TotalPrice: 10, SaleDate: time.Date(2026, time.January, 20, 14, 0, 0, 0, time.UTC)},
		{UserID: userID, ProductID: tea.ID, Quantity: 3, TotalPrice: 15, SaleDate: time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC)},
		{UserID: userID, ProductID: cake.ID, Quantity: 1, TotalPrice: 30, SaleDate: time.Date(2026, time.February, 10, 18, 0, 0, 0, time.UTC)},
	}
	if err := handler.repositories.Sales.CreateBatch(nil, sales); err != nil {
		t.Fatalf("create sales: %v", err)
	}
}
