package service

import (
	"context"

	"github.com/offer-fe/offer-be/internal/dto"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
)

type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

type Notifier interface {
	NotifyOffer(ctx context.Context, to string, articleTitle string, price int64) error
}

type ArticleService interface {
	GetCodeAndNameInfos(ctx context.Context) dto.CodeAndNameInfosResponse
	UploadImages(ctx context.Context, files []dto.ImageFile) (res dto.ImageURLsResponse, err error)
	CreateOrUpdate(ctx context.Context, req dto.ArticleCreateOrUpdateRequest, auth dto.Authentication) (res dto.ArticleCreateOrUpdateResponse, err error)
	UpdateTradeStatus(ctx context.Context, articleID int64, tradeStatusCode int, auth dto.Authentication) (res dto.TradeStatusResponse, err error)
	GetImageURLs(ctx context.Context, articleID int64) (res dto.ProductImageURLsResponse, err error)
	DeleteArticle(ctx context.Context, articleID int64, auth dto.Authentication) (err error)
	GetArticle(ctx context.Context, articleID int64, auth *dto.Authentication) (res dto.ArticleDetailResponse, err error)
	GetArticles(ctx context.Context, filter pkgdto.Filter, cond dto.ArticleListCondition, auth *dto.Authentication) (res pkgdto.PaginationResponse, err error)
	GetBoughtArticles(ctx context.Context, filter pkgdto.Filter, auth dto.Authentication) (res pkgdto.PaginationResponse, err error)
	GetMyOfferArticles(ctx context.Context, filter pkgdto.Filter, tradeStatusCode int, auth dto.Authentication) (res pkgdto.PaginationResponse, err error)
	GetLikedArticles(ctx context.Context, filter pkgdto.Filter, tradeStatusCode int, auth dto.Authentication) (res pkgdto.PaginationResponse, err error)
	ToggleLike(ctx context.Context, articleID int64, auth dto.Authentication) (res dto.LikeToggleResponse, err error)
}

type OfferService interface {
	AddOffer(ctx context.Context, articleID int64, req dto.OfferRequest, auth dto.Authentication) (res dto.OfferResponse, err error)
	GetOffers(ctx context.Context, articleID int64, filter pkgdto.Filter) (res pkgdto.PaginationResponse, err error)
	SelectOffer(ctx context.Context, offerID int64, auth dto.Authentication) (res dto.OfferResponse, err error)
}

type MemberService interface {
	Signup(ctx context.Context, req dto.MemberSignupRequest) (res dto.MemberResponse, err error)
	Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error)
	IsDuplicate(ctx context.Context, email string) (res dto.DuplicateResponse, err error)
	GetMyProfile(ctx context.Context, auth dto.Authentication) (res dto.MemberResponse, err error)
	UpdateMyProfile(ctx context.Context, req dto.MemberProfileUpdateRequest, auth dto.Authentication) (res dto.MemberResponse, err error)
	UploadProfileImage(ctx context.Context, file dto.ImageFile) (res dto.ImageURLsResponse, err error)
}

type ImageJanitor interface {
	ConsumeEvent(ctx context.Context)
	HandleMessage(ctx context.Context, value []byte) (err error)
	ReapOrphanImages(ctx context.Context) (deleted int, err error)
}
