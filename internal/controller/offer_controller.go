package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/internal/middleware"
	"github.com/offer-fe/offer-be/internal/service"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/offer-fe/offer-be/pkg/response"
	"github.com/rs/zerolog/log"
)

type OfferController struct {
	service service.OfferService
}

func CreateOfferController(e *echo.Group, service service.OfferService, auth *middleware.Auth) {
	c := OfferController{
		service: service,
	}
	e.POST("/articles/:id/offers", c.AddOffer, auth.Required)
	e.GET("/articles/:id/offers", c.GetOffers)
	e.PATCH("/offers/:id/select", c.SelectOffer, auth.Required)
}

func (c *OfferController) AddOffer(e echo.Context) error {
	articleID, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload := dto.OfferRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddOffer").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.AddOffer(e.Request().Context(), articleID, payload, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OfferController) GetOffers(e echo.Context) error {
	articleID, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	filter := pkgdto.Filter{}
	err = e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetOffers").Msg("")
	}

	resp, err := c.service.GetOffers(e.Request().Context(), articleID, filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OfferController) SelectOffer(e echo.Context) error {
	offerID, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.SelectOffer(e.Request().Context(), offerID, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
