package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/subject"
)

var errInvalidFileData = errors.New("invalid file data")

type subjectAPI struct {
	service  *subject.Service
	validate *validator.Validate
}

func registerSubjectAPI(group *echo.Group, svc *subject.Service, validate *validator.Validate) {
	api := &subjectAPI{service: svc, validate: validate}

	group.POST("/files", api.upload, middlewareBodyLimit)
	group.GET("/subjects", api.listFiles)
	group.GET("/subjects/names", api.listSubjects)
}

type uploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// upload expects a multipart form with a "file" part and a "data" part holding {"grade", "subject"} as JSON.
func (api *subjectAPI) upload(ctx echo.Context) error {
	var data subject.NewFile
	if err := json.Unmarshal([]byte(ctx.FormValue("data")), &data); err != nil {
		return core.NewValidationError(errInvalidFileData, core.FieldError{Field: "data", Error: errInvalidFileData.Error()})
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(subject.ErrEmptyFile, core.FieldError{Field: "file", Error: "this field is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	f, err := api.service.Upload(ctx.Request().Context(), data, subject.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	})
	if err != nil {
		return errors.Wrap(err, "uploading file")
	}
	return ctx.JSON(http.StatusOK, uploadResponse{Message: "File uploaded successfully", URL: f.Link})
}

func (api *subjectAPI) listFiles(ctx echo.Context) error {
	var filter subject.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return err
	}
	var ord Ordering
	ord.Bind(ctx, subject.OrderingFields...)

	files, err := api.service.Query(ctx.Request().Context(), filter, ord.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying files")
	}
	return ctx.JSON(http.StatusOK, files)
}

func (api *subjectAPI) listSubjects(ctx echo.Context) error {
	subjects, err := api.service.Subjects(ctx.Request().Context(), ctx.QueryParam("grade"))
	if err != nil {
		return errors.Wrap(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}
