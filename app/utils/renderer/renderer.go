package renderer

import (
	"github.com/unrolled/render"
)

func New(production bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    !production,
		IsDevelopment: !production,
		UnEscapeHTML:  true,
	})
}
