package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/internal/infrastructure/database/dbtest"
	"github.com/offer-fe/offer-be/internal/infrastructure/mail"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
	"github.com/offer-fe/offer-be/internal/middleware"
	"github.com/offer-fe/offer-be/internal/repository"
	"github.com/offer-fe/offer-be/internal/service"
	"github.com/offer-fe/offer-be/pkg/utils"
	"github.com/stretchr/testify/suite"
)

type stubStorage struct{}

func (stubStorage) Upload(ctx context.Context, filename string, body io.Reader, dir string) (string, error) {
	return fmt.Sprintf("https://cdn.test/%s/%s", dir, filename), nil
}

func (stubStorage) Delete(ctx context.Context, url string) error {
	return nil
}

func (stubStorage) List(ctx context.Context, dir string) ([]objectstorage.StoredObject, error) {
	return nil, nil
}

type discardPublisher struct{}

func (discardPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	return nil
}

type envelope struct {
	Status  string          `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type ControllerTestSuite struct {
	suite.Suite
	e *echo.Echo
}

func (s *ControllerTestSuite) SetupTest() {
	conf := config.Config{
		JWTConfig: config.JWTConfig{JWTSecret: "controller-secret", JWTExpirationHours: 1},
		ArticleConfig: config.ArticleConfig{
			NoImage:              "no_img",
			NumOfRegisterableImg: 5,
			ProductImgDir:        "productImage",
			ProfileImgDir:        "profileImage",
		},
	}

	db := dbtest.Open(s.T())
	articles := repository.CreateArticleRepository(db)
	members := repository.CreateMemberRepository(db)
	storage := stubStorage{}

	s.e = echo.New()
	s.e.Validator = utils.CreateValidator()
	g := s.e.Group("/api/v1")
	auth := middleware.CreateAuth(conf.JWTConfig.JWTSecret)

	CreateArticleController(g, service.CreateArticleService(articles, members, storage, discardPublisher{}, conf.ArticleConfig), auth)
	CreateOfferController(g, service.CreateOfferService(articles, members, mail.NoopNotifier{}), auth)
	CreateMemberController(g, service.CreateMemberService(members, storage, conf), auth)
}

func (s *ControllerTestSuite) do(method, path string, body interface{}, token string) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	return s.serve(req)
}

func (s *ControllerTestSuite) serve(req *http.Request) (int, envelope) {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *ControllerTestSuite) signupAndLogin(email string) (int64, string) {
	code, env := s.do(http.MethodPost, "/api/v1/members", dto.MemberSignupRequest{
		Email:    email,
		Password: "s3cret!",
		Nickname: strings.Split(email, "@")[0],
		Address:  "Seoul",
	}, "")
	s.Require().Equal(http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodPost, "/api/v1/members/login", dto.LoginRequest{Email: email, Password: "s3cret!"}, "")
	s.Require().Equal(http.StatusOK, code, env.Message)

	var login dto.LoginResponse
	s.Require().NoError(json.Unmarshal(env.Data, &login))
	return login.Member.ID, login.Token
}

func (s *ControllerTestSuite) createArticle(token string, imageURLs ...string) int64 {
	code, env := s.do(http.MethodPost, "/api/v1/articles", dto.ArticleCreateOrUpdateRequest{
		Title:        "Camera",
		Content:      "Mirrorless camera",
		CategoryCode: 1,
		TradeArea:    "Seocho-gu",
		Quantity:     1,
		Price:        700000,
		ImageURLs:    imageURLs,
	}, token)
	s.Require().Equal(http.StatusOK, code, env.Message)

	var res dto.ArticleCreateOrUpdateResponse
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	return res.ID
}

func (s *ControllerTestSuite) TestCodeAndNameInfos() {
	code, env := s.do(http.MethodGet, "/api/v1/articles/infos", nil, "")
	s.Equal(http.StatusOK, code)
	s.Equal("success", env.Status)

	var res dto.CodeAndNameInfosResponse
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	s.Len(res.Categories, 14)
}

func (s *ControllerTestSuite) TestAuthenticationIsRequired() {
	code, _ := s.do(http.MethodPost, "/api/v1/articles", dto.ArticleCreateOrUpdateRequest{}, "")
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/articles", nil, "not-a-jwt")
	s.Equal(http.StatusUnauthorized, code)
}

func (s *ControllerTestSuite) TestSignupValidation() {
	code, env := s.do(http.MethodPost, "/api/v1/members", dto.MemberSignupRequest{Email: "not-an-email", Password: "pw"}, "")
	s.Equal(http.StatusBadRequest, code)
	s.Contains(string(env.Errors), `"field":"Email"`)
	s.Contains(string(env.Errors), `"tag":"min"`)

	s.signupAndLogin("dup@offer.com")
	code, env = s.do(http.MethodPost, "/api/v1/members", dto.MemberSignupRequest{Email: "dup@offer.com", Password: "s3cret!", Nickname: "d", Address: "a"}, "")
	s.Equal(http.StatusConflict, code)
	s.Equal("MEMBER_ALREADY_EXIST", env.Code)

	code, env = s.do(http.MethodGet, "/api/v1/members/duplicate?email=dup@offer.com", nil, "")
	s.Equal(http.StatusOK, code)
	s.JSONEq(`{"is_duplicate":true}`, string(env.Data))
}

func (s *ControllerTestSuite) TestListingFilters() {
	sellerID, token := s.signupAndLogin("seller@offer.com")
	s.createArticle(token)

	code, env := s.do(http.MethodGet, "/api/v1/articles?categoryCode=1&memberId=1", nil, "")
	s.Equal(http.StatusBadRequest, code)
	s.Equal("NOT_SUPPORTING_PARAM_COMBINATION", env.Code)

	code, env = s.do(http.MethodGet, "/api/v1/articles?categoryCode=abc", nil, "")
	s.Equal(http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/articles?memberId=%d&tradeStatusCode=1&size=5", sellerID), nil, "")
	s.Require().Equal(http.StatusOK, code)

	var page struct {
		Metadata struct {
			TotalCount int `json:"total_count"`
			Limit      int `json:"limit"`
		} `json:"_metadata"`
		Records []dto.ArticleBriefViewResponse `json:"records"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Equal(1, page.Metadata.TotalCount)
	s.Equal(5, page.Metadata.Limit)
	s.Len(page.Records, 1)
}

func (s *ControllerTestSuite) TestArticleLifecycle() {
	_, sellerToken := s.signupAndLogin("seller@offer.com")
	_, buyerToken := s.signupAndLogin("buyer@offer.com")
	id := s.createArticle(sellerToken, "no_img", "https://x/1.png")
	path := fmt.Sprintf("/api/v1/articles/%d", id)

	code, env := s.do(http.MethodGet, path, nil, "")
	s.Require().Equal(http.StatusOK, code)
	var detail dto.ArticleDetailResponse
	s.Require().NoError(json.Unmarshal(env.Data, &detail))
	s.Equal(int64(1), detail.ViewCount)
	s.False(detail.IsLiked)
	s.Require().NotNil(detail.MainImageURL)
	s.Equal("https://x/1.png", *detail.MainImageURL)

	code, _ = s.do(http.MethodPut, path+"/like", nil, buyerToken)
	s.Require().Equal(http.StatusOK, code)

	code, env = s.do(http.MethodGet, path, nil, buyerToken)
	s.Require().Equal(http.StatusOK, code)
	s.Require().NoError(json.Unmarshal(env.Data, &detail))
	s.Equal(int64(2), detail.ViewCount)
	s.True(detail.IsLiked)

	code, env = s.do(http.MethodGet, path+"/imageUrls", nil, "")
	s.Require().Equal(http.StatusOK, code)
	s.JSONEq(`{"image_urls":["https://x/1.png",null,null,null,null]}`, string(env.Data))

	code, env = s.do(http.MethodPatch, path+"/tradeStatus", dto.TradeStatusUpdateRequest{Code: 2}, buyerToken)
	s.Equal(http.StatusForbidden, code)
	s.Equal("PERMISSION_DENIED", env.Code)

	code, env = s.do(http.MethodPatch, path+"/tradeStatus", dto.TradeStatusUpdateRequest{Code: 9}, sellerToken)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("INVALID_TRADE_STATUS_CODE", env.Code)

	code, _ = s.do(http.MethodDelete, path, nil, buyerToken)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodDelete, path, nil, sellerToken)
	s.Equal(http.StatusOK, code)

	code, env = s.do(http.MethodGet, path, nil, "")
	s.Equal(http.StatusNotFound, code)
	s.Equal("ARTICLE_NOT_FOUND", env.Code)
}

func (s *ControllerTestSuite) TestOffers() {
	_, sellerToken := s.signupAndLogin("seller@offer.com")
	_, buyerToken := s.signupAndLogin("buyer@offer.com")
	id := s.createArticle(sellerToken)
	path := fmt.Sprintf("/api/v1/articles/%d/offers", id)

	code, env := s.do(http.MethodPost, path, dto.OfferRequest{Price: 650000}, sellerToken)
	s.Equal(http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, path, dto.OfferRequest{Price: 650000}, buyerToken)
	s.Require().Equal(http.StatusOK, code, env.Message)
	var offer dto.OfferResponse
	s.Require().NoError(json.Unmarshal(env.Data, &offer))

	code, _ = s.do(http.MethodGet, path, nil, "")
	s.Equal(http.StatusOK, code)

	code, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/offers/%d/select", offer.ID), nil, sellerToken)
	s.Require().Equal(http.StatusOK, code)
	s.Require().NoError(json.Unmarshal(env.Data, &offer))
	s.True(offer.IsSelected)

	code, env = s.do(http.MethodGet, "/api/v1/articles/bought", nil, buyerToken)
	s.Equal(http.StatusOK, code)
	s.Contains(string(env.Data), `"total_count":1`)
}

func (s *ControllerTestSuite) TestUploadImages() {
	_, token := s.signupAndLogin("seller@offer.com")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range []string{"a.png", "b.png"} {
		part, err := writer.CreateFormFile("images", name)
		s.Require().NoError(err)
		_, err = part.Write([]byte(name))
		s.Require().NoError(err)
	}
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/articles/imageUrls", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	code, env := s.serve(req)
	s.Require().Equal(http.StatusOK, code, env.Message)
	s.JSONEq(`{"image_urls":["https://cdn.test/productImage/a.png","https://cdn.test/productImage/b.png"]}`, string(env.Data))
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
