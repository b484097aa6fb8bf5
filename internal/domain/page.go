package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a validated 1-based pagination window.
type Page struct {
	Number int
	Size   int
}

// NewPage validates page >= 1 and size in [1, MaxPageSize].
func NewPage(number, size int) (Page, *Failure) {
	if number < 1 || size < 1 {
		return Page{}, Fail(KindOutOfRange, "page and page size must be positive")
	}
	if size > MaxPageSize {
		return Page{}, Fail(KindOutOfRange, "page size cannot exceed %d", MaxPageSize)
	}
	return Page{Number: number, Size: size}, nil
}

// ClampPage coerces out-of-range values to defaults instead of failing.
func ClampPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }
