package service

import (
	"context"

	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/internal/repository"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
	"github.com/offer-fe/offer-be/pkg/errs"
)

type listingVariant int

const (
	listAll listingVariant = iota + 1
	listByCategory
	listByMemberAndStatus
	listByStatus
	listByMember
)

// filterPresence records which of the optional listing filters were supplied.
type filterPresence struct {
	category bool
	member   bool
	status   bool
}

func presenceOf(cond dto.ArticleListCondition) filterPresence {
	return filterPresence{
		category: cond.CategoryCode != nil,
		member:   cond.MemberID != nil,
		status:   cond.TradeStatusCode != nil,
	}
}

// listingTable holds every supported filter combination. Anything missing is rejected.
var listingTable = map[filterPresence]listingVariant{
	{}:                           listAll,
	{category: true}:             listByCategory,
	{member: true, status: true}: listByMemberAndStatus,
	{status: true}:               listByStatus,
	{member: true}:               listByMember,
}

func selectListingVariant(cond dto.ArticleListCondition) (listingVariant, error) {
	variant, ok := listingTable[presenceOf(cond)]
	if !ok {
		return 0, errs.ErrNotSupportingParamCombination
	}
	return variant, nil
}

type listingQuery func(ctx context.Context, repo repository.ArticleRepository, filter pkgdto.Filter, cond dto.ArticleListCondition) ([]domain.Article, int64, error)

var listingQueries = map[listingVariant]listingQuery{
	listAll: func(ctx context.Context, repo repository.ArticleRepository, filter pkgdto.Filter, cond dto.ArticleListCondition) ([]domain.Article, int64, error) {
		return repo.GetArticles(ctx, filter)
	},
	listByCategory: func(ctx context.Context, repo repository.ArticleRepository, filter pkgdto.Filter, cond dto.ArticleListCondition) ([]domain.Article, int64, error) {
		if _, ok := domain.CategoryOf(*cond.CategoryCode); !ok {
			return nil, 0, errs.ErrInvalidCategoryCode
		}
		return repo.GetArticlesByCategory(ctx, filter, *cond.CategoryCode)
	},
	listByMemberAndStatus: func(ctx context.Context, repo repository.ArticleRepository, filter pkgdto.Filter, cond dto.ArticleListCondition) ([]domain.Article, int64, error) {
		if _, ok := domain.TradeStatusOf(*cond.TradeStatusCode); !ok {
			return nil, 0, errs.ErrInvalidTradeStatusCode
		}
		if domain.IsCompleted(*cond.TradeStatusCode) {
			return repo.GetArticlesByWriterAndTradeStatus(ctx, filter, *cond.MemberID, domain.TradeStatusCompleted)
		}
		return repo.GetArticlesByWriterInProgress(ctx, filter, *cond.MemberID)
	},
	listByStatus: func(ctx context.Context, repo repository.ArticleRepository, filter pkgdto.Filter, cond dto.ArticleListCondition) ([]domain.Article, int64, error) {
		if _, ok := domain.TradeStatusOf(*cond.TradeStatusCode); !ok {
			return nil, 0, errs.ErrInvalidTradeStatusCode
		}
		if domain.IsCompleted(*cond.TradeStatusCode) {
			return repo.GetArticlesByTradeStatus(ctx, filter, domain.TradeStatusCompleted)
		}
		return repo.GetArticlesInProgress(ctx, filter)
	},
	listByMember: func(ctx context.Context, repo repository.ArticleRepository, filter pkgdto.Filter, cond dto.ArticleListCondition) ([]domain.Article, int64, error) {
		return repo.GetArticlesByWriter(ctx, filter, *cond.MemberID)
	},
}
