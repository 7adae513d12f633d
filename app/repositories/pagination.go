package repositories

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (p PageRequest) Normalize(defaultSize int) PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.SortDir != "ASC" && p.SortDir != "asc" {
		p.SortDir = "DESC"
	} else {
		p.SortDir = "ASC"
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}
