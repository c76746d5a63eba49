package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/elevate/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

// Bind reads ?ordering=field,-other; fields not in `allowed` are ignored.
func (ord *Ordering) Bind(ctx echo.Context, allowed ...string) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}
	for _, field := range strings.Split(val, ",") {
		if o, ok := core.ParseOrdering(field, allowed...); ok {
			ord.Orderings = append(ord.Orderings, o)
		}
	}
}
