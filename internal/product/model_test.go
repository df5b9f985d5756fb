package product

import (
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"FOOD", "CAR", "E_BOOK"} {
		c, err := ParseCategory(s)
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", s, err)
		}
		if string(c) != s {
			t.Errorf("ParseCategory(%q) = %q", s, c)
		}
	}

	for _, s := range []string{"", "food", "TOYS", "FOOD "} {
		if _, err := ParseCategory(s); err == nil {
			t.Errorf("ParseCategory(%q): expected error", s)
		}
	}
}

// fakeRow feeds canned column values into decodeProduct.
type fakeRow struct{ vals []any }

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			*v = r.vals[i].(int64)
		case *int:
			*v = r.vals[i].(int)
		case *string:
			*v = r.vals[i].(string)
		case *time.Time:
			*v = r.vals[i].(time.Time)
		}
	}
	return nil
}

func TestDecodeProduct(t *testing.T) {
	t.Parallel()

	now := time.Now()
	row := fakeRow{vals: []any{int64(7), "Apple", "FOOD", "http://img", int64(50), 10, "fresh", now, now}}
	p, err := decodeProduct(row)
	if err != nil {
		t.Fatal(err)
	}
	if p.ProductID != 7 || p.Category != CategoryFood || p.Price != 50 || p.Stock != 10 {
		t.Fatalf("decoded %+v", p)
	}
}

func TestDecodeProduct_UnknownCategoryFailsLoudly(t *testing.T) {
	t.Parallel()

	now := time.Now()
	row := fakeRow{vals: []any{int64(7), "Apple", "GROCERY", "http://img", int64(50), 10, "", now, now}}
	if _, err := decodeProduct(row); err == nil {
		t.Fatal("expected decode error for unknown stored category")
	}
}
