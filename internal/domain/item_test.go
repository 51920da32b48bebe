package domain

import (
	"errors"
	"testing"
)

func TestRemoveStock(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		remove    int
		wantErr   bool
		wantStock int
	}{
		{
			name:      "exact_drain",
			stock:     5,
			remove:    5,
			wantStock: 0,
		},
		{
			name:      "partial",
			stock:     10,
			remove:    3,
			wantStock: 7,
		},
		{
			name:      "below_zero_rejected",
			stock:     2,
			remove:    3,
			wantErr:   true,
			wantStock: 2,
		},
		{
			name:      "zero_stock_any_removal_rejected",
			stock:     0,
			remove:    1,
			wantErr:   true,
			wantStock: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := &Item{StockQuantity: tc.stock}
			err := item.RemoveStock(tc.remove)
			if tc.wantErr {
				if !errors.Is(err, ErrInsufficientStock) {
					t.Fatalf("RemoveStock(%d) err=%v, want ErrInsufficientStock", tc.remove, err)
				}
			} else if err != nil {
				t.Fatalf("RemoveStock(%d) unexpected err: %v", tc.remove, err)
			}
			if item.StockQuantity != tc.wantStock {
				t.Fatalf("stock=%d, want %d", item.StockQuantity, tc.wantStock)
			}
		})
	}
}

func TestAddStock(t *testing.T) {
	item := &Item{StockQuantity: 7}
	item.AddStock(3)
	if item.StockQuantity != 10 {
		t.Fatalf("stock=%d, want 10", item.StockQuantity)
	}
}

func TestRemoveThenRestoreRoundTrip(t *testing.T) {
	item := &Item{StockQuantity: 10}
	if err := item.RemoveStock(4); err != nil {
		t.Fatalf("RemoveStock: %v", err)
	}
	item.AddStock(4)
	if item.StockQuantity != 10 {
		t.Fatalf("stock=%d, want 10 after round trip", item.StockQuantity)
	}
}

func TestIsBook(t *testing.T) {
	book := &Item{DType: ItemTypeBook, Author: "a", ISBN: "i"}
	if !book.IsBook() {
		t.Fatal("book item should report IsBook")
	}
	generic := &Item{DType: ItemTypeGeneric}
	if generic.IsBook() {
		t.Fatal("generic item should not report IsBook")
	}
}
