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

type ArticleController struct {
	service service.ArticleService
}

func CreateArticleController(e *echo.Group, service service.ArticleService, auth *middleware.Auth) {
	c := ArticleController{
		service: service,
	}
	e.GET("/articles/infos", c.GetCodeAndNameInfos)
	e.POST("/articles/imageUrls", c.UploadImages, auth.Required)
	e.POST("/articles", c.CreateOrUpdate, auth.Required)
	e.GET("/articles", c.GetArticles, auth.Optional)
	e.GET("/articles/bought", c.GetBoughtArticles, auth.Required)
	e.GET("/articles/myOffers", c.GetMyOfferArticles, auth.Required)
	e.GET("/articles/likes", c.GetLikedArticles, auth.Required)
	e.GET("/articles/:id", c.GetArticle, auth.Optional)
	e.DELETE("/articles/:id", c.DeleteArticle, auth.Required)
	e.GET("/articles/:id/imageUrls", c.GetImageURLs)
	e.PATCH("/articles/:id/tradeStatus", c.UpdateTradeStatus, auth.Required)
	e.PUT("/articles/:id/like", c.ToggleLike, auth.Required)
}

func (c *ArticleController) GetCodeAndNameInfos(e echo.Context) error {
	return response.WriteSuccessResponse(e, "", c.service.GetCodeAndNameInfos(e.Request().Context()))
}

func (c *ArticleController) UploadImages(e echo.Context) error {
	files, err := formImages(e, "images")
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UploadImages").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.UploadImages(e.Request().Context(), files)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) CreateOrUpdate(e echo.Context) error {
	payload := dto.ArticleCreateOrUpdateRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateOrUpdate").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.CreateOrUpdate(e.Request().Context(), payload, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) GetArticles(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetArticles").Msg("")
	}

	cond := dto.ArticleListCondition{}
	if cond.CategoryCode, err = optionalInt(e, "categoryCode"); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	if cond.MemberID, err = optionalInt64(e, "memberId"); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}
	if cond.TradeStatusCode, err = optionalInt(e, "tradeStatusCode"); err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetArticles(e.Request().Context(), filter, cond, middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) GetBoughtArticles(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetBoughtArticles").Msg("")
	}

	resp, err := c.service.GetBoughtArticles(e.Request().Context(), filter, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) GetMyOfferArticles(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetMyOfferArticles").Msg("")
	}

	tradeStatusCode, err := tradeStatusParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetMyOfferArticles(e.Request().Context(), filter, tradeStatusCode, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) GetLikedArticles(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "GetLikedArticles").Msg("")
	}

	tradeStatusCode, err := tradeStatusParam(e)
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetLikedArticles(e.Request().Context(), filter, tradeStatusCode, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) GetArticle(e echo.Context) error {
	id, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetArticle(e.Request().Context(), id, middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) DeleteArticle(e echo.Context) error {
	id, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	err = c.service.DeleteArticle(e.Request().Context(), id, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", nil)
}

func (c *ArticleController) GetImageURLs(e echo.Context) error {
	id, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetImageURLs(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) UpdateTradeStatus(e echo.Context) error {
	id, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	payload := dto.TradeStatusUpdateRequest{}
	err = e.Bind(&payload)
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UpdateTradeStatus").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(payload); err != nil {
		return response.WriteValidationErrorResponse(e, err)
	}

	resp, err := c.service.UpdateTradeStatus(e.Request().Context(), id, payload.Code, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ArticleController) ToggleLike(e echo.Context) error {
	id, err := pathID(e, "id")
	if err != nil {
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.ToggleLike(e.Request().Context(), id, *middleware.GetAuthentication(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
