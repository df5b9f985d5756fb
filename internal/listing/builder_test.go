package listing

import (
	"errors"
	"reflect"
	"testing"
)

var productSortable = map[string]string{
	"created_date": "created_date",
	"price":        "price",
	"product_id":   "product_id",
}

func TestSelectSQL_FiltersSortPagination(t *testing.T) {
	t.Parallel()

	q := NewQuery("SELECT * FROM product", "SELECT count(*) FROM product", "product_id")
	q.Filter("category = ?", "FOOD")
	q.Filter("product_name ILIKE ?", "%apple%")
	if err := q.SortBy("price", "desc", productSortable); err != nil {
		t.Fatal(err)
	}
	if err := q.Paginate(5, 10); err != nil {
		t.Fatal(err)
	}

	sql, args := q.SelectSQL()
	want := "SELECT * FROM product WHERE category = $1 AND product_name ILIKE $2" +
		" ORDER BY price DESC, product_id ASC LIMIT $3 OFFSET $4"
	if sql != want {
		t.Fatalf("sql:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"FOOD", "%apple%", 5, 10}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelectSQL_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() (string, []any) {
		q := NewQuery("SELECT * FROM product", "SELECT count(*) FROM product", "product_id")
		q.Filter("category = ?", "CAR")
		_ = q.SortBy("created_date", "asc", productSortable)
		_ = q.Paginate(20, 0)
		return q.SelectSQL()
	}
	sql1, args1 := build()
	sql2, args2 := build()
	if sql1 != sql2 || !reflect.DeepEqual(args1, args2) {
		t.Fatalf("identical params built different queries: %q vs %q", sql1, sql2)
	}
}

func TestSelectSQL_NoDuplicateTieBreak(t *testing.T) {
	t.Parallel()

	q := NewQuery("SELECT * FROM product", "SELECT count(*) FROM product", "product_id")
	if err := q.SortBy("product_id", "asc", productSortable); err != nil {
		t.Fatal(err)
	}
	sql, _ := q.SelectSQL()
	if want := "SELECT * FROM product ORDER BY product_id ASC"; sql != want {
		t.Fatalf("sql = %q, want %q", sql, want)
	}
}

func TestCountSQL_SamePredicatesNoPagination(t *testing.T) {
	t.Parallel()

	q := NewQuery("SELECT * FROM product", "SELECT count(*) FROM product", "product_id")
	q.Filter("category = ?", "E_BOOK")
	_ = q.SortBy("price", "asc", productSortable)
	_ = q.Paginate(5, 95)

	sql, args := q.CountSQL()
	if want := "SELECT count(*) FROM product WHERE category = $1"; sql != want {
		t.Fatalf("count sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"E_BOOK"}) {
		t.Fatalf("count args = %v", args)
	}
}

func TestSortBy_RejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	q := NewQuery("SELECT * FROM product", "SELECT count(*) FROM product", "product_id")
	err := q.SortBy("price; DROP TABLE product;--", "asc", productSortable)
	if !errors.Is(err, ErrInvalidQueryParam) {
		t.Fatalf("err = %v, want ErrInvalidQueryParam", err)
	}
	// nothing from the rejected input may appear in the rendered query
	sql, _ := q.SelectSQL()
	if want := "SELECT * FROM product ORDER BY product_id ASC"; sql != want {
		t.Fatalf("sql after rejected sort = %q", sql)
	}
}

func TestSortBy_RejectsBadDirection(t *testing.T) {
	t.Parallel()

	q := NewQuery("SELECT * FROM product", "SELECT count(*) FROM product", "product_id")
	if err := q.SortBy("price", "sideways", productSortable); !errors.Is(err, ErrInvalidQueryParam) {
		t.Fatalf("err = %v, want ErrInvalidQueryParam", err)
	}
}

func TestPaginate_Bounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		limit, offset int
		ok            bool
	}{
		{"zero limit", 0, 0, true},
		{"max limit", MaxLimit, 0, true},
		{"limit too big", MaxLimit + 1, 0, false},
		{"negative limit", -1, 0, false},
		{"negative offset", 10, -1, false},
	}
	for _, tc := range cases {
		q := NewQuery("SELECT 1", "SELECT count(*)", "id")
		err := q.Paginate(tc.limit, tc.offset)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidQueryParam) {
			t.Errorf("%s: err = %v, want ErrInvalidQueryParam", tc.name, err)
		}
	}
}
