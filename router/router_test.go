package router_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/config"
	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/router"
	"github.com/inamrestro/restaurant-app/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type page struct {
	Status  bool            `json:"status"`
	Page    string          `json:"page"`
	Message string          `json:"message"`
	Notices []utils.Notice  `json:"notices"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	server *httptest.Server
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.AutoMigrate(db))
	return db
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)

	cfg := &config.Config{
		MediaRoot:     t.TempDir(),
		SessionSecret: "test-secret",
		CORSOrigins:   []string{"http://localhost:3000"},
	}
	r := router.SetupRouter(router.Deps{
		DB:        db,
		Config:    cfg,
		Sessions:  utils.NewSessionManager("test-secret", time.Hour, nil),
		Hub:       feed.NewHub(),
		Publisher: feed.Nop{},
		Metrics:   metrics.New(prometheus.NewRegistry()),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &testApp{t: t, db: db, server: srv}
}

// client follows no redirects so tests can assert on them; it keeps cookies.
func (a *testApp) client() *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) get(c *http.Client, path string) *http.Response {
	a.t.Helper()
	resp, err := c.Get(a.server.URL + path)
	require.NoError(a.t, err)
	return resp
}

func (a *testApp) postForm(c *http.Client, path string, form url.Values) *http.Response {
	a.t.Helper()
	resp, err := c.PostForm(a.server.URL+path, form)
	require.NoError(a.t, err)
	return resp
}

func (a *testApp) do(c *http.Client, req *http.Request) *http.Response {
	a.t.Helper()
	resp, err := c.Do(req)
	require.NoError(a.t, err)
	return resp
}

func readPage(t *testing.T, resp *http.Response) page {
	t.Helper()
	defer resp.Body.Close()
	var p page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

func readJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get("Location"))
}

func (a *testApp) signupAndLogin(c *http.Client, username string) {
	a.t.Helper()
	resp := a.postForm(c, "/signup/", url.Values{
		"first_name": {"Test"},
		"last_name":  {"User"},
		"username":   {username},
		"email":      {username + "@example.com"},
		"password":   {"pass1234"},
		"password2":  {"pass1234"},
	})
	assertRedirect(a.t, resp, "/login/")

	resp = a.postForm(c, "/login/", url.Values{"username": {username}, "password": {"pass1234"}})
	assertRedirect(a.t, resp, "/")
}

func (a *testApp) seedCatalog() (models.Category, models.MenuItem, models.MenuItem) {
	a.t.Helper()
	category := models.Category{Name: "Mains"}
	require.NoError(a.t, a.db.Create(&category).Error)
	pizza := models.MenuItem{CategoryID: category.ID, Name: "Pizza", Price: decimal.RequireFromString("12.50"), IsAvailable: true}
	hidden := models.MenuItem{CategoryID: category.ID, Name: "Secret", Price: decimal.RequireFromString("3.00"), IsAvailable: false}
	require.NoError(a.t, a.db.Omit("Category").Create(&pizza).Error)
	require.NoError(a.t, a.db.Omit("Category").Create(&hidden).Error)
	return category, pizza, hidden
}

func TestPing(t *testing.T) {
	app := newTestApp(t)
	resp := app.get(app.client(), "/ping")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.get(app.client(), "/metrics")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "restaurant_http_requests_total")
}

func TestCatalogPages(t *testing.T) {
	app := newTestApp(t)
	category, _, _ := app.seedCatalog()
	c := app.client()

	p := readPage(t, app.get(c, "/"))
	assert.Equal(t, "home", p.Page)
	assert.Contains(t, string(p.Data), "Mains")

	p = readPage(t, app.get(c, "/category/"+itoa(category.ID)+"/"))
	assert.Equal(t, "menu_items", p.Page)
	assert.Contains(t, string(p.Data), "Pizza")
	assert.NotContains(t, string(p.Data), "Secret")

	resp := app.get(c, "/category/abc/")
	p = readPage(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", p.Page)
}

func TestProtectedPagesRedirectToLogin(t *testing.T) {
	app := newTestApp(t)
	c := app.client()

	for _, path := range []string{"/cart/", "/profile/", "/place-order/", "/add-to-cart/1/", "/remove/1/"} {
		resp := app.get(c, path)
		assertRedirect(t, resp, "/login/?next="+url.QueryEscape(path))
	}
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)
	c := app.client()

	resp := app.postForm(c, "/signup/", url.Values{
		"username": {"dana"}, "password": {"abc"}, "password2": {"xyz"},
	})
	p := readPage(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Passwords do not match", p.Message)

	var n int64
	app.db.Model(&models.User{}).Count(&n)
	assert.Zero(t, n)

	app.signupAndLogin(c, "dana")

	resp = app.postForm(app.client(), "/signup/", url.Values{
		"username": {"dana"}, "password": {"abc"}, "password2": {"abc"},
	})
	p = readPage(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username already taken", p.Message)

	// failed login re-renders the form without a message
	other := app.client()
	resp = app.postForm(other, "/login/", url.Values{"username": {"dana"}, "password": {"wrong"}})
	p = readPage(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "login", p.Page)
	assert.Empty(t, p.Message)

	// next is honoured for local paths only
	resp = app.postForm(other, "/login/?next=%2Fcart%2F", url.Values{"username": {"dana"}, "password": {"pass1234"}})
	assertRedirect(t, resp, "/cart/")
	resp = app.postForm(app.client(), "/login/?next=https%3A%2F%2Fevil.example", url.Values{"username": {"dana"}, "password": {"pass1234"}})
	assertRedirect(t, resp, "/")

	p = readPage(t, app.get(c, "/profile/"))
	assert.Equal(t, "profile", p.Page)
	assert.Contains(t, string(p.Data), "dana@example.com")
}

func TestCartAndCheckout(t *testing.T) {
	app := newTestApp(t)
	_, pizza, _ := app.seedCatalog()
	c := app.client()
	app.signupAndLogin(c, "erin")

	// empty cart cannot be ordered
	assertRedirect(t, app.postForm(c, "/place-order/", nil), "/cart/")
	p := readPage(t, app.get(c, "/cart/"))
	assert.Equal(t, []utils.Notice{{Level: utils.FlashError, Text: "Your cart is empty."}}, p.Notices)

	assertRedirect(t, app.postForm(c, "/add-to-cart/"+itoa(pizza.ID)+"/", nil), "/cart/")
	assertRedirect(t, app.get(c, "/add-to-cart/"+itoa(pizza.ID)+"/"), "/cart/")

	p = readPage(t, app.get(c, "/cart/"))
	assert.Equal(t, "cart", p.Page)
	require.NotEmpty(t, p.Notices)
	assert.Equal(t, "Item added to cart!", p.Notices[0].Text)

	var cart struct {
		CartItems []models.Cart `json:"cart_items"`
		Total     string        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(p.Data, &cart))
	require.Len(t, cart.CartItems, 1)
	assert.Equal(t, 2, cart.CartItems[0].Quantity)
	assert.Equal(t, "25.00", cart.Total)

	// notices are shown once
	p = readPage(t, app.get(c, "/cart/"))
	assert.Empty(t, p.Notices)

	resp := app.get(c, "/add-to-cart/999/")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assertRedirect(t, app.postForm(c, "/place-order/", nil), "/")
	p = readPage(t, app.get(c, "/"))
	assert.Equal(t, []utils.Notice{{Level: utils.FlashSuccess, Text: "Order placed successfully!"}}, p.Notices)

	var order models.Order
	require.NoError(t, app.db.Preload("OrderItems").First(&order).Error)
	assert.Equal(t, "25.00", order.TotalAmount.StringFixed(2))
	assert.Equal(t, models.StatusPending, order.Status)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)

	var left int64
	app.db.Model(&models.Cart{}).Count(&left)
	assert.Zero(t, left)
}

func TestRemoveFromCart(t *testing.T) {
	app := newTestApp(t)
	_, pizza, _ := app.seedCatalog()

	owner := app.client()
	app.signupAndLogin(owner, "frank")
	assertRedirect(t, app.get(owner, "/add-to-cart/"+itoa(pizza.ID)+"/"), "/cart/")

	var row models.Cart
	require.NoError(t, app.db.First(&row).Error)

	intruder := app.client()
	app.signupAndLogin(intruder, "gina")
	resp := app.get(intruder, "/remove/"+itoa(row.ID)+"/")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assertRedirect(t, app.get(owner, "/remove/"+itoa(row.ID)+"/"), "/cart/")
	var n int64
	app.db.Model(&models.Cart{}).Count(&n)
	assert.Zero(t, n)
}

func TestContact(t *testing.T) {
	app := newTestApp(t)
	c := app.client()

	p := readPage(t, app.get(c, "/contact/"))
	assert.Equal(t, "contact", p.Page)

	resp := app.postForm(c, "/contact/", url.Values{"name": {"Hana"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = app.postForm(c, "/contact/", url.Values{
		"name": {"Hana"}, "email": {"hana@example.com"}, "phone": {"0811"}, "message": {"Table for 8?"},
	})
	assertRedirect(t, resp, "/contact/")

	p = readPage(t, app.get(c, "/contact/"))
	require.Len(t, p.Notices, 1)
	assert.Equal(t, utils.FlashSuccess, p.Notices[0].Level)

	var msg models.ContactMessage
	require.NoError(t, app.db.First(&msg).Error)
	assert.Equal(t, "Table for 8?", msg.Message)
}

func TestLogoutRevokesSession(t *testing.T) {
	app := newTestApp(t)
	c := app.client()
	app.signupAndLogin(c, "ivan")

	base, _ := url.Parse(app.server.URL)
	var token string
	for _, ck := range c.Jar.Cookies(base) {
		if ck.Name == utils.SessionCookie {
			token = ck.Value
		}
	}
	require.NotEmpty(t, token)

	assertRedirect(t, app.get(c, "/logout/"), "/login/")
	assertRedirect(t, app.get(c, "/profile/"), "/login/?next=%2Fprofile%2F")

	req, _ := http.NewRequest(http.MethodGet, app.server.URL+"/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := app.do(&http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}, req)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestAdminBackOffice(t *testing.T) {
	app := newTestApp(t)
	_, pizza, _ := app.seedCatalog()

	customer := app.client()
	app.signupAndLogin(customer, "judy")
	resp := app.get(customer, "/admin/orders")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = app.get(app.client(), "/admin/orders")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	hash, err := bcrypt.GenerateFromPassword([]byte("staffpass"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, app.db.Create(&models.User{Username: "boss", Password: string(hash), IsStaff: true}).Error)
	staff := app.client()
	assertRedirect(t, app.postForm(staff, "/login/", url.Values{"username": {"boss"}, "password": {"staffpass"}}), "/")

	// category with image upload
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Desserts"))
	fw, err := mw.CreateFormFile("image", "cake.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("not really a jpeg"))
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, app.server.URL+"/admin/categories", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var created struct {
		Status bool            `json:"status"`
		Data   models.Category `json:"data"`
	}
	resp = app.do(staff, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	readJSON(t, resp, &created)
	require.NotNil(t, created.Data.Image)
	assert.True(t, strings.HasPrefix(*created.Data.Image, "category/"))

	resp = app.get(app.client(), "/media/"+*created.Data.Image)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = app.get(app.client(), "/media/secrets.txt")
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// menu item create and toggle availability
	resp = app.postForm(staff, "/admin/menus", url.Values{
		"category_id": {itoa(created.Data.ID)}, "name": {"Cake"}, "price": {"6.50"},
	})
	var item struct {
		Data models.MenuItem `json:"data"`
	}
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	readJSON(t, resp, &item)
	assert.True(t, item.Data.IsAvailable)

	req, _ = http.NewRequest(http.MethodPatch, app.server.URL+"/admin/menus/"+itoa(item.Data.ID),
		strings.NewReader(url.Values{"is_available": {"false"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp = app.do(staff, req)
	readJSON(t, resp, &item)
	assert.False(t, item.Data.IsAvailable)

	resp = app.postForm(staff, "/admin/menus", url.Values{"category_id": {itoa(created.Data.ID)}, "name": {"Bad"}, "price": {"abc"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// an ordered item cannot be deleted
	assertRedirect(t, app.get(customer, "/add-to-cart/"+itoa(pizza.ID)+"/"), "/cart/")
	assertRedirect(t, app.get(customer, "/place-order/"), "/")

	req, _ = http.NewRequest(http.MethodDelete, app.server.URL+"/admin/menus/"+itoa(pizza.ID), nil)
	resp = app.do(staff, req)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// deleting a category removes its items
	req, _ = http.NewRequest(http.MethodDelete, app.server.URL+"/admin/categories/"+itoa(created.Data.ID), nil)
	resp = app.do(staff, req)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cakes int64
	app.db.Model(&models.MenuItem{}).Where("name = ?", "Cake").Count(&cakes)
	assert.Zero(t, cakes)

	var orders struct {
		Data []models.Order `json:"data"`
	}
	resp = app.get(staff, "/admin/orders")
	readJSON(t, resp, &orders)
	require.Len(t, orders.Data, 1)
	require.Len(t, orders.Data[0].OrderItems, 1)
	assert.Equal(t, "Pizza", orders.Data[0].OrderItems[0].MenuItem.Name)

	resp = app.get(staff, "/admin/orders/"+itoa(orders.Data[0].ID))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = app.get(staff, "/admin/orders/999")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = app.get(staff, "/admin/contact-messages")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestSignupPasswordTooLong(t *testing.T) {
	app := newTestApp(t)
	long := strings.Repeat("x", 80)

	resp := app.postForm(app.client(), "/signup/", url.Values{
		"username": {"kate"}, "password": {long}, "password2": {long},
	})
	p := readPage(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "signup", p.Page)
	assert.Equal(t, "Password must be at most 72 bytes", p.Message)

	var n int64
	app.db.Model(&models.User{}).Count(&n)
	assert.Zero(t, n)
}

func TestForgedFlashCookieIgnored(t *testing.T) {
	app := newTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, app.server.URL+"/", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "W3sibGV2ZWwiOiJzdWNjZXNzIiwidGV4dCI6IkNhbGwgKzEtNTU1In1d"})
	p := readPage(t, app.do(app.client(), req))
	assert.Equal(t, "home", p.Page)
	assert.Empty(t, p.Notices)
}

func TestFailedCheckoutKeepsCart(t *testing.T) {
	app := newTestApp(t)
	_, pizza, _ := app.seedCatalog()
	c := app.client()
	app.signupAndLogin(c, "liam")
	assertRedirect(t, app.get(c, "/add-to-cart/"+itoa(pizza.ID)+"/"), "/cart/")

	require.NoError(t, app.db.Callback().Create().Before("gorm:create").Register("test:fail_order_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			_ = tx.AddError(errors.New("order_items insert failed"))
		}
	}))

	resp := app.postForm(c, "/place-order/", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var orders, carts int64
	app.db.Model(&models.Order{}).Count(&orders)
	app.db.Model(&models.Cart{}).Count(&carts)
	assert.Zero(t, orders)
	assert.EqualValues(t, 1, carts)
}
