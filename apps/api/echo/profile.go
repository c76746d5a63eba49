package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core/profile"
)

type profileAPI struct {
	service  *profile.Service
	validate *validator.Validate
}

func registerProfileAPI(group *echo.Group, svc *profile.Service, validate *validator.Validate) {
	api := &profileAPI{service: svc, validate: validate}

	group.POST("/auth", api.createAccount)
	group.GET("/grades", api.listGrades)
	group.GET("/themes", api.listThemes)

	detail := group.Group("/profiles/:id", profileCtx(svc))
	detail.GET("", api.retrieve)
	detail.PUT("", api.update)
	detail.DELETE("", api.delete)
}

type createAccountResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func (api *profileAPI) createAccount(ctx echo.Context) error {
	var data profile.NewProfile
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.service.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating account")
	}
	return ctx.JSON(http.StatusCreated, createAccountResponse{Message: "user created successfully", UserID: p.ID})
}

func (api *profileAPI) listGrades(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, profile.Grades)
}

func (api *profileAPI) listThemes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, profile.Themes)
}

func (api *profileAPI) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, contextProfile(ctx))
}

func (api *profileAPI) update(ctx echo.Context) error {
	var data profile.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.service.Update(ctx.Request().Context(), contextProfile(ctx), data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileAPI) delete(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Request().Context(), contextProfile(ctx).ID); err != nil {
		return errors.Wrap(err, "deleting profile")
	}
	return ctx.NoContent(http.StatusNoContent)
}
