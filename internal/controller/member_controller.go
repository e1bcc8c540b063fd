package controller

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/internal/middleware"
	"github.com/offer-fe/offer-be/internal/service"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/offer-fe/offer-be/pkg/response"
	"github.com/rs/zerolog/log"
)

type MemberController struct {
	service service.MemberService
}

func CreateMemberController(e *echo.Group, service service.MemberService, auth *middleware.Auth) {
	c := MemberController{
		service: service,
	}
	e.POST("/members", c.Signup)
	e.POST("/members/login", c.Login)
	e.GET("/members/duplicate", c.IsDuplicate)
	e.GET("/members/me", c.GetMyProfile, auth.Required)
	e.PATCH("/members/me", c.UpdateMyProfile, auth.Required)
	e.POST("/members/imageUrls", c.UploadProfileImage, auth.Required)
}

func (c *MemberController) Signup(e echo.Context) error {
	payload := dto.MemberSignupRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Signup").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.Signup(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *MemberController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *MemberController) IsDuplicate(e echo.Context) error {
	email := e.QueryParam("email")
	if email == "" {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.IsDuplicate(e.Request().Context(), email)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *MemberController) GetMyProfile(e echo.Context) error {
	resp, err := c.service.GetMyProfile(e.Request().Context(), *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *MemberController) UpdateMyProfile(e echo.Context) error {
	payload := dto.MemberProfileUpdateRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateMyProfile").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.UpdateMyProfile(e.Request().Context(), payload, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *MemberController) UploadProfileImage(e echo.Context) error {
	fh, err := e.FormFile("image")
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UploadProfileImage").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.UploadProfileImage(e.Request().Context(), imageFiles([]*multipart.FileHeader{fh})[0])
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
