package helpers

import (
	"net/http"
	"strconv"

	"github.com/Rakhulsr/wishcrate/app/repositories"
)

// ParsePageRequest reads page, size, sortBy and sortDir from the query string.
func ParsePageRequest(r *http.Request, defaultSize int) repositories.PageRequest {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))

	return repositories.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}.Normalize(defaultSize)
}
