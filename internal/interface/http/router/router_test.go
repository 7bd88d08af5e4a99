package router_test

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/xiebiao/bookcatalog/internal/application/catalog"
	appcurrency "github.com/xiebiao/bookcatalog/internal/application/currency"
	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	"github.com/xiebiao/bookcatalog/internal/domain/catalog"
	"github.com/xiebiao/bookcatalog/internal/domain/currency"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	infracurrency "github.com/xiebiao/bookcatalog/internal/infrastructure/currency"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/geoip"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/internal/testutil"
	"github.com/xiebiao/bookcatalog/pkg/clock"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

const testSecret = "router-test-secret"

// fakeLocator 固定IP→国家映射
type fakeLocator map[string]string

func (f fakeLocator) CountryCode(ip net.IP) (string, error) {
	return f[ip.String()], nil
}

type testServer struct {
	engine  *gin.Engine
	catalog *testutil.CatalogRepository
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()

	defaults := currency.Defaults{Country: "us", Symbol: "$"}
	rates := currency.NewStore(currency.NewTable(map[string]currency.Rate{
		"us": {Symbol: "$", Rate: decimal.NewFromInt(1)},
		"jp": {Symbol: "¥", Rate: decimal.NewFromInt(110)},
	}, defaults), defaults)

	csvPath := filepath.Join(t.TempDir(), "currencies.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("country code|currency symbol|rate\nus|$|1\njp|¥|120\n"), 0o644))
	reloader := infracurrency.NewReloader(rates, csvPath, defaults, nil)

	catalogRepo := testutil.NewCatalogRepository()
	catalogService := catalog.NewService(catalogRepo, clock.NewFixedClock(testutil.Now), nil)
	reviewService := review.NewService(testutil.NewReviewRepository())

	engine := router.New(router.Options{
		Mode:        gin.TestMode,
		RateLimiter: limiter,
		Auth:        middleware.NewAuthMiddleware(jwt.NewVerifier(testSecret, "")),
		Country:     geoip.NewResolver(fakeLocator{"203.0.113.5": "jp"}, "us"),
		Catalog: handler.NewCatalogHandler(
			appcatalog.NewListBooksUseCase(catalogService, rates),
			appcatalog.NewFeaturedBooksUseCase(catalogService, rates),
			appcatalog.NewGetBookUseCase(catalogService, reviewService, rates),
			appcatalog.NewFacetsUseCase(catalogService),
		),
		Reviews: handler.NewReviewHandler(
			appreview.NewListReviewsUseCase(reviewService),
			appreview.NewMetadataUseCase(reviewService),
		),
		Currency: handler.NewCurrencyHandler(appcurrency.NewReloadUseCase(reloader)),
	})

	return &testServer{engine: engine, catalog: catalogRepo}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type listData struct {
	Data   []map[string]interface{} `json:"data"`
	Paging map[string]interface{}   `json:"paging"`
}

type rangeData struct {
	Data []interface{} `json:"data"`
	Type string        `json:"type"`
}

func (s *testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) get(t *testing.T, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return s.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func ids(items []map[string]interface{}) []uint {
	out := make([]uint, len(items))
	for i, item := range items {
		out[i] = uint(item["id"].(float64))
	}
	return out
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestPing(t *testing.T) {
	s := newTestServer(t, nil)
	w, env := s.get(t, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestListBooks(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("默认排序", func(t *testing.T) {
		w, env := s.get(t, "/api/v1/books?page_size=5")
		require.Equal(t, http.StatusOK, w.Code)

		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, []uint{5, 1, 7, 3, 10}, ids(data.Data))
		assert.EqualValues(t, 12, data.Paging["total_items"])
		assert.EqualValues(t, 3, data.Paging["total_pages"])
		assert.Equal(t, true, data.Paging["has_next"])
		assert.Equal(t, false, data.Paging["has_prev"])
	})

	t.Run("第二页", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/books?page=2&page_size=5")
		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, []uint{9, 6, 11, 12, 4}, ids(data.Data))
	})

	t.Run("超大页码返回空页", func(t *testing.T) {
		w, env := s.get(t, "/api/v1/books?page=368934881474191034&page_size=25")
		require.Equal(t, http.StatusOK, w.Code)

		var data listData
		decode(t, env.Data, &data)
		assert.NotNil(t, data.Data)
		assert.Empty(t, data.Data)
		assert.EqualValues(t, 12, data.Paging["total_items"])
		assert.Equal(t, false, data.Paging["has_next"])
	})

	t.Run("作者过滤", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/books?page_size=20&author=Alice+Test")
		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, []uint{5, 1, 9, 11, 2}, ids(data.Data))
	})

	t.Run("最低评分", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/books?page_size=20&min_rating=4")
		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, []uint{5, 1, 7, 3, 6}, ids(data.Data))
	})

	t.Run("country参数换算价格", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/books?page_size=5&country=JP")
		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, "6600.00", data.Data[0]["list_price"])
		assert.Equal(t, "3300.00", data.Data[0]["effective_price"])
		assert.Equal(t, "¥", data.Data[0]["currency_symbol"])
	})

	t.Run("按客户端IP定位国家", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/books?page_size=5", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
		_, env := s.do(t, req)
		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, "¥", data.Data[0]["currency_symbol"])
	})

	t.Run("默认币种", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/books?page_size=5")
		var data listData
		decode(t, env.Data, &data)
		assert.Equal(t, "60.00", data.Data[0]["list_price"])
		assert.Equal(t, "$", data.Data[0]["currency_symbol"])
	})
}

func TestListBooks_InvalidParams(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		target string
		code   int
	}{
		{"每页数量不在允许列表", "/api/v1/books?page_size=10", apperrors.ErrCodeInvalidPageSize},
		{"页码为0", "/api/v1/books?page=0", apperrors.ErrCodeInvalidPage},
		{"页码不是数字", "/api/v1/books?page=abc", apperrors.ErrCodeBindError},
		{"排序未定义", "/api/v1/books?sort_by=title", apperrors.ErrCodeInvalidSort},
		{"评分超出范围", "/api/v1/books?min_rating=6", apperrors.ErrCodeInvalidRating},
		{"评分为0", "/api/v1/books?min_rating=0", apperrors.ErrCodeInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.get(t, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, env.Code)
		})
	}
}

func TestFeaturedAndTopDiscounted(t *testing.T) {
	s := newTestServer(t, nil)

	var views []map[string]interface{}

	_, env := s.get(t, "/api/v1/books/featured")
	decode(t, env.Data, &views)
	assert.Equal(t, []uint{3, 5, 1, 6, 7, 11, 2, 12}, ids(views))

	_, env = s.get(t, "/api/v1/books/featured?sort_by=popular&top_k=3")
	decode(t, env.Data, &views)
	assert.Equal(t, []uint{1, 3, 7}, ids(views))

	_, env = s.get(t, "/api/v1/books/top-discounted")
	decode(t, env.Data, &views)
	assert.Equal(t, []uint{5, 1, 7, 3, 10}, ids(views))

	w, env := s.get(t, "/api/v1/books/top-discounted?top_k=51")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidTopK, env.Code)

	w, env = s.get(t, "/api/v1/books/featured?sort_by=newest")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidSort, env.Code)
}

func TestGetBook(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.get(t, "/api/v1/books/3")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		ID           uint                     `json:"id"`
		CategoryName string                   `json:"category_name"`
		Reviews      []map[string]interface{} `json:"reviews"`
	}
	decode(t, env.Data, &detail)
	assert.Equal(t, uint(3), detail.ID)
	assert.Equal(t, testutil.CategoryNonFiction, detail.CategoryName)
	assert.Len(t, detail.Reviews, 2)

	w, env = s.get(t, "/api/v1/books/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)

	w, _ = s.get(t, "/api/v1/books/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRanges(t *testing.T) {
	s := newTestServer(t, nil)

	var data rangeData
	_, env := s.get(t, "/api/v1/categories/range")
	decode(t, env.Data, &data)
	assert.Equal(t, "str", data.Type)
	assert.Equal(t, []interface{}{testutil.CategoryFiction, testutil.CategoryNonFiction, testutil.CategorySciFi}, data.Data)

	_, env = s.get(t, "/api/v1/authors/range")
	decode(t, env.Data, &data)
	assert.Len(t, data.Data, 3)

	_, env = s.get(t, "/api/v1/reviews/range")
	decode(t, env.Data, &data)
	assert.Equal(t, "int", data.Type)
	assert.Equal(t, []interface{}{1.0, 3.0, 4.0, 5.0}, data.Data)
}

func TestReviews(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("按星级过滤并携带汇总", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/reviews?book_id=1&filter_rating=4")
		var data listData
		decode(t, env.Data, &data)
		require.Len(t, data.Data, 1)
		assert.EqualValues(t, 4, data.Data[0]["rating"])

		detail := data.Paging["additional_detail"].(map[string]interface{})
		assert.EqualValues(t, 2, detail["total_reviews"])
		assert.EqualValues(t, 450, detail["average_rating"])
	})

	t.Run("缺少book_id", func(t *testing.T) {
		w, env := s.get(t, "/api/v1/reviews")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})

	t.Run("评分汇总", func(t *testing.T) {
		_, env := s.get(t, "/api/v1/reviews/metadata?book_id=3")
		var detail map[string]int
		decode(t, env.Data, &detail)
		assert.Equal(t, 2, detail["star_5_count"])
		assert.Equal(t, 500, detail["average_rating"])
	})
}

func TestCurrencyReload(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/admin/currencies/reload", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/currencies/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, env = s.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result appcurrency.ReloadResult
	decode(t, env.Data, &result)
	assert.Equal(t, 2, result.Rates)

	// 新快照生效：jp汇率120
	_, env = s.get(t, "/api/v1/books?page_size=5&country=jp")
	var data listData
	decode(t, env.Data, &data)
	assert.Equal(t, "7200.00", data.Data[0]["list_price"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/currencies/reload", nil)
	req.Header.Set("Authorization", "Token "+token)
	w, env = s.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
}

func TestDataAccessFailure(t *testing.T) {
	s := newTestServer(t, nil)
	s.catalog.Err = apperrors.WrapCode(errors.New("connection refused"), apperrors.ErrCodeDataAccess, "查询图书失败")

	w, env := s.get(t, "/api/v1/books")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, apperrors.ErrCodeDataAccess, env.Code)
	assert.NotContains(t, env.Message, "connection refused")
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(0.001, 1))

	w, _ := s.get(t, "/api/v1/categories/range")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.get(t, "/api/v1/categories/range")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apperrors.ErrCodeTooManyRequests, env.Code)

	// 健康检查不限流
	w, _ = s.get(t, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
}
