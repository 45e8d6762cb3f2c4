package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appauth "github.com/xiebiao/bookstore-api/internal/application/auth"
	appbook "github.com/xiebiao/bookstore-api/internal/application/book"
	apporder "github.com/xiebiao/bookstore-api/internal/application/order"
	"github.com/xiebiao/bookstore-api/internal/application/social"
	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/author"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/cart"
	"github.com/xiebiao/bookstore-api/internal/domain/category"
	"github.com/xiebiao/bookstore-api/internal/domain/review"
	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/domain/wishlist"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-api/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/internal/testutil"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
)

type testApp struct {
	db     *gorm.DB
	jwt    *jwt.Manager
	engine *gin.Engine
}

// newTestApp 与 wire_gen.go 相同的组装方式，数据库换成 SQLite，Redis 换成空实现
func newTestApp(t *testing.T, limiter *middleware.RateLimiter) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	tx := mysql.NewTxManager(db)
	jwtManager := jwt.NewManager("test-secret", 30*time.Minute, time.Hour)
	sessions := redis.NoopSessionStore{}

	userRepo := mysql.NewUserRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	userService := user.NewServiceWithCost(userRepo, bcrypt.MinCost)
	authorService := author.NewService(authorRepo)
	categoryService := category.NewService(categoryRepo)
	bookService := book.NewService(bookRepo, authorRepo, categoryRepo)
	cartService := cart.NewService(mysql.NewCartRepository(db), bookRepo)
	wishlistService := wishlist.NewService(mysql.NewWishlistRepository(db), bookRepo)
	reviewService := review.NewService(mysql.NewReviewRepository(db), mysql.NewCommentRepository(db), mysql.NewLikeRepository(db), bookRepo)

	h := Handlers{
		Auth: handler.NewAuthHandler(
			appauth.NewLoginUseCase(userService, jwtManager, sessions),
			appauth.NewRefreshUseCase(userRepo, jwtManager, sessions),
			appauth.NewLogoutUseCase(sessions),
		),
		User:     handler.NewUserHandler(appuser.NewRegisterUseCase(userService), userService),
		Author:   handler.NewAuthorHandler(authorService),
		Category: handler.NewCategoryHandler(categoryService),
		Book: handler.NewBookHandler(
			bookService,
			appbook.NewListBooksUseCase(bookService),
			appbook.NewCreateBookUseCase(bookService, tx),
			appbook.NewUpdateBookUseCase(bookService, tx),
			appbook.NewDeleteBookUseCase(bookRepo, tx),
		),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(orderRepo, bookRepo, userService, tx),
			apporder.NewQueryOrderUseCase(orderRepo),
			apporder.NewUpdateStatusUseCase(orderRepo, tx),
			apporder.NewDeleteOrderUseCase(orderRepo, tx),
		),
		Cart:     handler.NewCartHandler(social.NewCartUseCase(userService, cartService, tx), cartService),
		Wishlist: handler.NewWishlistHandler(social.NewWishlistUseCase(userService, wishlistService, tx), wishlistService),
		Review:   handler.NewReviewHandler(social.NewReviewUseCase(userService, reviewService), reviewService),
	}
	auth := middleware.NewAuthMiddleware(jwtManager, userRepo, sessions)

	engine := New(Options{Mode: gin.TestMode}, h, auth, limiter)
	return &testApp{db: db, jwt: jwtManager, engine: engine}
}

func (a *testApp) token(t *testing.T, u *mysql.UserModel) string {
	t.Helper()
	pair, err := a.jwt.GenerateTokenPair(u.ID, u.Role)
	require.NoError(t, err)
	return pair.AccessToken
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func idOf(m map[string]interface{}, key string) string {
	return strconv.Itoa(int(m[key].(float64)))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "bookstore-api", body["service"])
}

func TestUnknownRouteAndMethod(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodGet, "/nope", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "RESOURCE_NOT_FOUND", body["code"])
	assert.Equal(t, "/nope", body["path"])

	w = app.do(t, http.MethodDelete, "/health", nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decode(t, w)["code"])
}

func TestSignupLoginAndMe(t *testing.T) {
	app := newTestApp(t, nil)

	w := app.do(t, http.MethodPost, "/users", map[string]interface{}{
		"email":      "reader@example.com",
		"password":   "secret123",
		"name":       "Reader",
		"birth_date": "1990-01-31",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "USER", decode(t, w)["role"])

	w = app.do(t, http.MethodPost, "/users", map[string]interface{}{
		"email": "READER@example.com", "password": "secret123", "name": "Again",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_RESOURCE", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/auth/login", map[string]interface{}{
		"email": "reader@example.com", "password": "wrong-pass1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/auth/login", map[string]interface{}{
		"email": "reader@example.com", "password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := decode(t, w)
	access := login["access_token"].(string)
	refresh := login["refresh_token"].(string)

	w = app.do(t, http.MethodGet, "/users/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)
	assert.Equal(t, "reader@example.com", me["email"])
	assert.Equal(t, "1990-01-31", me["birth_date"])

	// refresh token 不能当 access token 用
	w = app.do(t, http.MethodGet, "/users/me", nil, refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/auth/refresh", map[string]interface{}{"refresh_token": refresh}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decode(t, w)["access_token"])

	w = app.do(t, http.MethodPost, "/auth/login", `{"email":"reader@example.com"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, w)["code"])
}

func TestSignupAdminRole(t *testing.T) {
	app := newTestApp(t, nil)
	admin := testutil.UserFixture(t, app.db, "admin@example.com", "secret123", "ADMIN")

	body := map[string]interface{}{
		"email": "boss@example.com", "password": "secret123", "name": "Boss", "role": "ADMIN",
	}
	w := app.do(t, http.MethodPost, "/users", body, "")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/users", body, app.token(t, admin))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ADMIN", decode(t, w)["role"])
}

func TestUserAdminRoutes(t *testing.T) {
	app := newTestApp(t, nil)
	admin := testutil.UserFixture(t, app.db, "admin@example.com", "secret123", "ADMIN")
	reader := testutil.UserFixture(t, app.db, "reader@example.com", "secret123", "USER")
	other := testutil.UserFixture(t, app.db, "other@example.com", "secret123", "USER")

	w := app.do(t, http.MethodGet, "/users", nil, app.token(t, reader))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodGet, "/users", nil, app.token(t, admin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 3)

	w = app.do(t, http.MethodGet, "/users/"+strconv.Itoa(int(other.ID)), nil, app.token(t, reader))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPut, "/users/"+strconv.Itoa(int(reader.ID)), map[string]interface{}{"name": "Renamed"}, app.token(t, reader))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Renamed", decode(t, w)["name"])

	w = app.do(t, http.MethodGet, "/users/abc", nil, app.token(t, admin))
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "INVALID_QUERY_PARAM", body["code"])
	assert.Equal(t, "id", body["details"].(map[string]interface{})["param"])

	w = app.do(t, http.MethodDelete, "/users/"+strconv.Itoa(int(other.ID)), nil, app.token(t, admin))
	require.Equal(t, http.StatusNoContent, w.Code)

	// 注销后的用户 token 失效
	w = app.do(t, http.MethodGet, "/users/me", nil, app.token(t, other))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode(t, w)["code"])
}

func TestCatalogFlow(t *testing.T) {
	app := newTestApp(t, nil)
	admin := app.token(t, testutil.UserFixture(t, app.db, "admin@example.com", "secret123", "ADMIN"))
	reader := app.token(t, testutil.UserFixture(t, app.db, "reader@example.com", "secret123", "USER"))

	w := app.do(t, http.MethodPost, "/authors", map[string]interface{}{"name": "Alan Donovan"}, reader)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/authors", map[string]interface{}{"name": "Alan Donovan"}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	authorID := decode(t, w)["id"]

	w = app.do(t, http.MethodPost, "/categories", map[string]interface{}{"name": "Programming", "slug": "programming"}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	categoryID := decode(t, w)["id"]

	w = app.do(t, http.MethodPost, "/categories", map[string]interface{}{"name": "Other", "slug": "programming"}, admin)
	require.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/books", map[string]interface{}{
		"title": "Bad Price", "price": "-1", "author_id": authorID, "category_ids": []interface{}{categoryID},
	}, admin)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/books", map[string]interface{}{
		"title": "No Author", "price": "10", "author_id": 999, "category_ids": []interface{}{categoryID},
	}, admin)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", decode(t, w)["code"])

	for _, b := range []struct{ title, price string }{
		{"The Go Programming Language", "59.90"},
		{"Cheap Book", "9.5"},
	} {
		w = app.do(t, http.MethodPost, "/books", map[string]interface{}{
			"title": b.title, "price": b.price, "author_id": authorID,
			"category_ids": []interface{}{categoryID}, "stock_cnt": 5,
			"published_date": "2015-11-16",
		}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = app.do(t, http.MethodGet, "/books?sort=price,ASC&size=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode(t, w)
	assert.Equal(t, float64(2), page["totalElements"])
	assert.Equal(t, float64(2), page["totalPages"])
	assert.Equal(t, "price,ASC", page["sort"])
	first := page["content"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "9.50", first["price"])
	assert.Equal(t, "Alan Donovan", first["author"].(map[string]interface{})["name"])

	w = app.do(t, http.MethodGet, "/books?keyword=GO+PROGRAMMING", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["totalElements"])

	w = app.do(t, http.MethodGet, "/books?min_price=abc", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "INVALID_QUERY_PARAM", body["code"])
	assert.Equal(t, "min_price", body["details"].(map[string]interface{})["param"])

	w = app.do(t, http.MethodDelete, "/authors/"+strconv.Itoa(int(authorID.(float64))), nil, admin)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "STATE_CONFLICT", decode(t, w)["code"])
}

func TestOrderFlow(t *testing.T) {
	app := newTestApp(t, nil)
	adminUser := testutil.UserFixture(t, app.db, "admin@example.com", "secret123", "ADMIN")
	readerUser := testutil.UserFixture(t, app.db, "reader@example.com", "secret123", "USER")
	admin, reader := app.token(t, adminUser), app.token(t, readerUser)
	b := testutil.BookFixture(t, app.db, "Order Book", "10000", 5)

	w := app.do(t, http.MethodPost, "/orders", map[string]interface{}{
		"user_id": "abc", "items": []interface{}{map[string]interface{}{"book_id": b.ID, "quantity": 1}},
	}, reader)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_QUERY_PARAM", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/orders", map[string]interface{}{
		"user_id": adminUser.ID, "items": []interface{}{map[string]interface{}{"book_id": b.ID, "quantity": 1}},
	}, reader)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPost, "/orders", map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"book_id": b.ID, "quantity": 9}},
	}, reader)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "STATE_CONFLICT", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/orders", map[string]interface{}{
		"items": []interface{}{map[string]interface{}{"book_id": b.ID, "quantity": 2}},
	}, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "20000.00", created["total_amount"])
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, 3, testutil.StockOf(t, app.db, b.ID))
	orderPath := "/orders/" + idOf(created, "order_id")

	w = app.do(t, http.MethodGet, orderPath, nil, reader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/orders?status=bogus", nil, reader)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, w)["code"])

	w = app.do(t, http.MethodGet, "/orders", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["totalElements"])

	w = app.do(t, http.MethodPatch, orderPath+"/status", map[string]interface{}{"status": "PAID"}, reader)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = app.do(t, http.MethodPatch, orderPath+"/status", map[string]interface{}{"status": "PAID"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode(t, w)
	assert.Equal(t, "PAID", paid["status"])
	assert.NotNil(t, paid["paid_at"])

	w = app.do(t, http.MethodDelete, orderPath, nil, admin)
	require.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPut, orderPath, map[string]interface{}{"status": "CANCELLED"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodDelete, orderPath, nil, admin)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = app.do(t, http.MethodGet, orderPath, nil, admin)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSocialFlow(t *testing.T) {
	app := newTestApp(t, nil)
	reader := app.token(t, testutil.UserFixture(t, app.db, "reader@example.com", "secret123", "USER"))
	b := testutil.BookFixture(t, app.db, "Social Book", "12.00", 10)

	// 购物车：第一次新建，第二次合并
	w := app.do(t, http.MethodPost, "/cart", map[string]interface{}{"book_id": b.ID}, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, "/cart", map[string]interface{}{"book_id": b.ID, "quantity": 2}, reader)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	row := decode(t, w)
	assert.Equal(t, float64(3), row["quantity"])
	assert.Equal(t, "12.00", row["unit_price"])

	w = app.do(t, http.MethodGet, "/cart", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = app.do(t, http.MethodDelete, "/cart/"+idOf(row, "id"), nil, reader)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 心愿单
	w = app.do(t, http.MethodPost, "/wishlists", map[string]interface{}{"book_id": b.ID}, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, "/wishlists", map[string]interface{}{"book_id": b.ID}, reader)
	require.Equal(t, http.StatusConflict, w.Code)
	w = app.do(t, http.MethodGet, "/wishlists", nil, reader)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = app.do(t, http.MethodGet, "/wishlists/me", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	// 书评、评论、点赞
	w = app.do(t, http.MethodPost, "/reviews", map[string]interface{}{"book_id": b.ID, "rating": 6}, reader)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/reviews", map[string]interface{}{"book_id": b.ID, "rating": 5, "title": "Great"}, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	reviewPath := "/reviews/" + idOf(decode(t, w), "id")

	w = app.do(t, http.MethodPost, reviewPath+"/comments", map[string]interface{}{"content": "agree"}, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	parent := decode(t, w)

	w = app.do(t, http.MethodPost, reviewPath+"/comments", map[string]interface{}{
		"content": "reply", "parent_id": parent["id"],
	}, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, reviewPath+"/comments", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeList(t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, parent["id"], comments[1]["parent_id"])

	w = app.do(t, http.MethodPost, reviewPath+"/like", nil, reader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, reviewPath+"/like", nil, reader)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_RESOURCE", decode(t, w)["code"])

	w = app.do(t, http.MethodGet, "/reviews?book_id="+strconv.Itoa(int(b.ID)), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decodeList(t, w)
	require.Len(t, reviews, 1)
	assert.Equal(t, float64(1), reviews[0]["like_count"])

	w = app.do(t, http.MethodDelete, reviewPath+"/like", nil, reader)
	require.Equal(t, http.StatusOK, w.Code)
	w = app.do(t, http.MethodDelete, reviewPath+"/like", nil, reader)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", decode(t, w)["code"])

	w = app.do(t, http.MethodPost, "/reviews", map[string]interface{}{"book_id": b.ID, "rating": 4}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimit(t *testing.T) {
	app := newTestApp(t, middleware.NewRateLimiter(2, time.Minute))

	for i := 0; i < 2; i++ {
		w := app.do(t, http.MethodGet, "/health", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := app.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "TOO_MANY_REQUESTS", decode(t, w)["code"])
}
