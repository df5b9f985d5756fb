package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkwan/gomall/internal/listing"
	"github.com/jkwan/gomall/internal/product"
)

//
// ---------- STUBS & FAKES ----------
//

// stubProductRepo implements product.Repository in memory and records
// the query params the handler built.
type stubProductRepo struct {
	products map[int64]*product.Product
	nextID   int64
	lastQP   product.QueryParams
	listErr  error
}

func newStubProductRepo(products ...*product.Product) *stubProductRepo {
	s := &stubProductRepo{products: map[int64]*product.Product{}, nextID: 100}
	for _, p := range products {
		s.products[p.ProductID] = p
	}
	return s
}

func (s *stubProductRepo) Create(ctx context.Context, p *product.Product) (int64, error) {
	s.nextID++
	cp := *p
	cp.ProductID = s.nextID
	cp.CreatedDate = time.Now()
	cp.LastModifiedDate = cp.CreatedDate
	s.products[cp.ProductID] = &cp
	return cp.ProductID, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (s *stubProductRepo) Update(ctx context.Context, p *product.Product) error {
	if _, ok := s.products[p.ProductID]; !ok {
		return product.ErrNotFound
	}
	s.products[p.ProductID] = p
	return nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id int64) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductRepo) List(ctx context.Context, qp product.QueryParams) ([]product.Product, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.lastQP = qp
	out := []product.Product{}
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProductRepo) Count(ctx context.Context, qp product.QueryParams) (int, error) {
	if s.listErr != nil {
		return 0, s.listErr
	}
	return len(s.products), nil
}

func newProductRouter(repo product.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/products", getProductsHandler(repo))
	r.GET("/products/:productId", getProductHandler(repo, nil))
	r.POST("/products", createProductHandler(repo))
	r.PUT("/products/:productId", updateProductHandler(repo, nil))
	r.DELETE("/products/:productId", deleteProductHandler(repo, nil))
	return r
}

//
// ---------- TESTS ----------
//

func TestGetProducts_EnvelopeAndDefaults(t *testing.T) {
	t.Parallel()

	now := time.Now()
	repo := newStubProductRepo(&product.Product{
		ProductID: 1, ProductName: "Apple", Category: product.CategoryFood,
		Price: 50, Stock: 10, CreatedDate: now, LastModifiedDate: now,
	})
	r := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Limit   int               `json:"limit"`
		Offset  int               `json:"offset"`
		Total   int               `json:"total"`
		Results []product.Product `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Limit != 5 || resp.Offset != 0 || resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("envelope = %+v", resp)
	}
	if repo.lastQP.OrderBy != "created_date" || repo.lastQP.Sort != "desc" {
		t.Fatalf("default sort = %s %s", repo.lastQP.OrderBy, repo.lastQP.Sort)
	}
	if repo.lastQP.Category != nil || repo.lastQP.Search != nil {
		t.Fatalf("absent filters must impose no constraint: %+v", repo.lastQP)
	}
}

func TestGetProducts_FiltersPassedThrough(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	r := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?category=CAR&search=tesla&orderBy=price&sort=asc&limit=30&offset=60", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	qp := repo.lastQP
	if qp.Category == nil || *qp.Category != product.CategoryCar {
		t.Fatalf("category = %v", qp.Category)
	}
	if qp.Search == nil || *qp.Search != "tesla" {
		t.Fatalf("search = %v", qp.Search)
	}
	if qp.OrderBy != "price" || qp.Sort != "asc" || qp.Limit != 30 || qp.Offset != 60 {
		t.Fatalf("qp = %+v", qp)
	}
}

func TestGetProducts_UnknownCategory(t *testing.T) {
	t.Parallel()

	r := newProductRouter(newStubProductRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?category=GROCERY", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestGetProducts_InvalidSortRejected(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	repo.listErr = fmt.Errorf("%w: unknown sort column", listing.ErrInvalidQueryParam)
	r := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products?orderBy=evil", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestGetProduct_OK(t *testing.T) {
	t.Parallel()

	now := time.Now()
	repo := newStubProductRepo(&product.Product{
		ProductID: 1, ProductName: "Apple", Category: product.CategoryFood,
		Price: 50, Stock: 10, CreatedDate: now, LastModifiedDate: now,
	})
	r := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ProductID != 1 || got.Category != product.CategoryFood {
		t.Fatalf("got %+v", got)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	t.Parallel()

	r := newProductRouter(newStubProductRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCreateProduct_Created(t *testing.T) {
	t.Parallel()

	repo := newStubProductRepo()
	r := newProductRouter(repo)

	body := `{"productName":"Keyboard","category":"E_BOOK","price":19990,"stock":10}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got product.Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ProductID == 0 || got.Price != 19990 {
		t.Fatalf("got %+v", got)
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	t.Parallel()

	r := newProductRouter(newStubProductRepo())

	body := `{"productName":"Keyboard","category":"GADGET","price":19990,"stock":10}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteProduct_NoContent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	repo := newStubProductRepo(&product.Product{ProductID: 1, Category: product.CategoryFood, CreatedDate: now, LastModifiedDate: now})
	r := newProductRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if _, ok := repo.products[1]; ok {
		t.Fatal("product still present after delete")
	}
}
