package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core/profile"
)

const ctxObjectKey = "object"

// profileCtx loads the profile of the :id path param into the context.
func profileCtx(svc *profile.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			p, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if err == profile.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "loading profile")
			}
			ctx.Set(ctxObjectKey, p)
			return next(ctx)
		}
	}
}

func contextProfile(ctx echo.Context) profile.Profile {
	p, _ := ctx.Get(ctxObjectKey).(profile.Profile)
	return p
}

// middlewareBodyLimit caps upload requests a bit above subject.MaxUploadSize to leave room for the form.
var middlewareBodyLimit = middleware.BodyLimit("33M")
