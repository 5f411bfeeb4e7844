package repositories

import (
	"errors"
	"math"
	"testing"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		size       int
		wantOffset int
		wantErr    bool
	}{
		{name: "First Page", number: 0, size: 10, wantOffset: 0},
		{name: "Third Page", number: 2, size: 25, wantOffset: 50},
		{name: "Negative Page", number: -1, size: 10, wantErr: true},
		{name: "Zero Size", number: 0, size: 0, wantErr: true},
		{name: "Last Reachable Page", number: math.MaxInt / 10, size: 10, wantOffset: math.MaxInt / 10 * 10},
		{name: "Offset Overflows", number: math.MaxInt/10 + 1, size: 10, wantErr: true},
		{name: "Huge Page Index", number: math.MaxInt / 5, size: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := NewPageRequest(tt.number, tt.size)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidPage) {
					t.Errorf("NewPageRequest() error = %v, want ErrInvalidPage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPageRequest() unexpected error: %v", err)
			}
			if page.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", page.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestPageRequest_OffsetSaturates(t *testing.T) {
	tests := []struct {
		name string
		page PageRequest
		want int
	}{
		{name: "Overflowing", page: PageRequest{Number: math.MaxInt / 5, Size: 10}, want: math.MaxInt},
		{name: "Negative Number", page: PageRequest{Number: -3, Size: 10}, want: 0},
		{name: "Zero Size", page: PageRequest{Number: 3, Size: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.Offset(); got != tt.want {
				t.Errorf("Offset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		total    int
		size     int
		number   int
		want     int
		wantNext bool
	}{
		{total: 0, size: 10, want: 0},
		{total: 10, size: 10, want: 1},
		{total: 11, size: 10, want: 2, wantNext: true},
		{total: 11, size: 10, number: 1, want: 2},
		{total: 4, size: math.MaxInt, want: 1},
	}

	for _, tt := range tests {
		page := &Page[int]{TotalItems: tt.total, Size: tt.size, Number: tt.number}
		if got := page.TotalPages(); got != tt.want {
			t.Errorf("TotalPages() for %d items of %d = %d, want %d", tt.total, tt.size, got, tt.want)
		}
		if page.HasNext() != tt.wantNext {
			t.Errorf("HasNext() for page %d of %d items = %v, want %v", tt.number, tt.total, page.HasNext(), tt.wantNext)
		}
	}
}
