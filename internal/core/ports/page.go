package ports

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Page selects a window of a listing. Page is 1-based.
type Page struct {
	Page    int
	PerPage int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// TotalPages returns how many pages total rows span.
func (p Page) TotalPages(total int64) int {
	n := p.Normalize()
	pages := int(total) / n.PerPage
	if int(total)%n.PerPage > 0 {
		pages++
	}
	return pages
}
