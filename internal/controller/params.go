package controller

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/internal/dto"
)

func pathID(e echo.Context, name string) (int64, error) {
	return strconv.ParseInt(e.Param(name), 10, 64)
}

// optionalInt returns nil when the query parameter is absent or blank.
func optionalInt(e echo.Context, name string) (*int, error) {
	raw := e.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt64(e echo.Context, name string) (*int64, error) {
	raw := e.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// tradeStatusParam reads tradeStatusCode, zero when omitted.
func tradeStatusParam(e echo.Context) (int, error) {
	code, err := optionalInt(e, "tradeStatusCode")
	if err != nil || code == nil {
		return 0, err
	}
	return *code, nil
}

func imageFiles(headers []*multipart.FileHeader) []dto.ImageFile {
	files := make([]dto.ImageFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, dto.ImageFile{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

func formImages(e echo.Context, field string) ([]dto.ImageFile, error) {
	form, err := e.MultipartForm()
	if err != nil {
		return nil, err
	}
	return imageFiles(form.File[field]), nil
}
