package repositories

import (
	"fmt"
	"math"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/models"
)

// PageRequest selects a zero-based page of a fixed size
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest validates a page request
func NewPageRequest(number, size int) (PageRequest, error) {
	if number < 0 || size <= 0 || number > math.MaxInt/size {
		return PageRequest{}, fmt.Errorf("page %d of size %d: %w", number, size, models.ErrInvalidPage)
	}
	return PageRequest{Number: number, Size: size}, nil
}

// Offset returns the number of rows skipped before the page. It saturates
// at math.MaxInt instead of wrapping.
func (p PageRequest) Offset() int {
	if p.Number <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

// Page is one page of a sorted result set
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
}

// TotalPages returns the number of pages of the whole result set
func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 || p.TotalItems <= 0 {
		return 0
	}
	return (p.TotalItems-1)/p.Size + 1
}

// HasNext reports whether a page follows this one
func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}
