package response

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/pkg/errs"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Code = errs.GetErrorCode(err)
	resp.Message = err.Error()
	resp.Errors = errors

	return c.JSON(statusCode, resp)
}

// WriteValidationErrorResponse answers 400 with one entry per failed field.
func WriteValidationErrorResponse(c echo.Context, err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return WriteErrorResponse(c, errs.ErrClient, nil)
	}

	fields := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		})
	}

	return WriteErrorResponse(c, errs.ErrClient, fields)
}
