package repository

import (
	"context"

	"github.com/offer-fe/offer-be/internal/domain"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
)

type ArticleRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ArticleRepository) error) error

	GetArticleByID(ctx context.Context, id int64) (data domain.Article, err error)
	AddArticle(ctx context.Context, data domain.Article) (id int64, err error)
	UpdateArticle(ctx context.Context, data domain.Article) (err error)
	UpdateTradeStatus(ctx context.Context, id int64, tradeStatusCode int) (err error)
	IncreaseViewCount(ctx context.Context, id int64) (err error)
	DeleteArticle(ctx context.Context, id int64) (err error)

	GetArticles(ctx context.Context, filter pkgdto.Filter) (data []domain.Article, total int64, err error)
	GetArticlesByCategory(ctx context.Context, filter pkgdto.Filter, categoryCode int) (data []domain.Article, total int64, err error)
	GetArticlesByWriter(ctx context.Context, filter pkgdto.Filter, writerID int64) (data []domain.Article, total int64, err error)
	GetArticlesByWriterAndTradeStatus(ctx context.Context, filter pkgdto.Filter, writerID int64, tradeStatusCode int) (data []domain.Article, total int64, err error)
	GetArticlesByWriterInProgress(ctx context.Context, filter pkgdto.Filter, writerID int64) (data []domain.Article, total int64, err error)
	GetArticlesByTradeStatus(ctx context.Context, filter pkgdto.Filter, tradeStatusCode int) (data []domain.Article, total int64, err error)
	GetArticlesInProgress(ctx context.Context, filter pkgdto.Filter) (data []domain.Article, total int64, err error)
	GetLikedArticles(ctx context.Context, filter pkgdto.Filter, memberID int64, completed bool) (data []domain.Article, total int64, err error)
	GetOfferedArticles(ctx context.Context, filter pkgdto.Filter, offererID int64, completed bool) (data []domain.Article, total int64, err error)
	GetBoughtArticles(ctx context.Context, filter pkgdto.Filter, offererID int64) (data []domain.Article, total int64, err error)

	GetProductImages(ctx context.Context, articleID int64) (data []domain.ProductImage, err error)
	AddProductImages(ctx context.Context, data []domain.ProductImage) (err error)
	DeleteProductImagesByArticleID(ctx context.Context, articleID int64) (err error)
	GetReferencedImageURLs(ctx context.Context, urls []string) (referenced map[string]bool, err error)

	IsLiked(ctx context.Context, memberID int64, articleID int64) (liked bool, err error)
	GetLikedArticleIDs(ctx context.Context, memberID int64, articleIDs []int64) (liked map[int64]bool, err error)
	AddLike(ctx context.Context, data domain.LikeArticle) (err error)
	DeleteLike(ctx context.Context, memberID int64, articleID int64) (err error)

	AddOffer(ctx context.Context, data domain.Offer) (id int64, err error)
	GetOfferByID(ctx context.Context, id int64) (data domain.Offer, err error)
	GetOffersByArticleID(ctx context.Context, filter pkgdto.Filter, articleID int64) (data []domain.Offer, total int64, err error)
	SelectOffer(ctx context.Context, id int64) (err error)

	NullifyOfferArticle(ctx context.Context, articleID int64) (err error)
	NullifyLikeArticle(ctx context.Context, articleID int64) (err error)
	NullifyReviewArticle(ctx context.Context, articleID int64) (err error)
	NullifyMessageRoomArticle(ctx context.Context, articleID int64) (err error)
}

type MemberRepository interface {
	GetMemberByPrincipal(ctx context.Context, principal string) (data domain.Member, err error)
	GetMemberByID(ctx context.Context, id int64) (data domain.Member, err error)
	ExistsByPrincipal(ctx context.Context, principal string) (exists bool, err error)
	AddMember(ctx context.Context, data domain.Member) (id int64, err error)
	UpdateMemberProfile(ctx context.Context, data domain.Member) (err error)
}
