package service

import (
	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/dto"
)

func toArticleBriefViewResponse(article domain.Article, isLiked bool) dto.ArticleBriefViewResponse {
	tradeStatus, _ := domain.TradeStatusOf(article.TradeStatusCode)

	return dto.ArticleBriefViewResponse{
		ID:           article.ID,
		Title:        article.Title,
		TradeArea:    article.TradeArea,
		Price:        article.Price,
		MainImageURL: article.MainImageURL,
		TradeStatus:  tradeStatus,
		ViewCount:    article.ViewCount,
		CreatedAt:    article.CreatedAt,
		ModifiedAt:   article.UpdatedAt,
		IsLiked:      isLiked,
	}
}

func toArticleDetailResponse(article domain.Article, writer domain.Member, isLiked bool) dto.ArticleDetailResponse {
	category, _ := domain.CategoryOf(article.CategoryCode)
	tradeStatus, _ := domain.TradeStatusOf(article.TradeStatusCode)

	return dto.ArticleDetailResponse{
		ID: article.ID,
		Writer: dto.WriterResponse{
			ID:           writer.ID,
			Nickname:     writer.Nickname,
			Address:      writer.Address,
			ProfileImage: writer.ProfileImage,
			AppleLevel:   writer.AppleLevel,
		},
		Title:        article.Title,
		Content:      article.Content,
		Category:     category,
		TradeArea:    article.TradeArea,
		Quantity:     article.Quantity,
		Price:        article.Price,
		TradeStatus:  tradeStatus,
		MainImageURL: article.MainImageURL,
		ViewCount:    article.ViewCount,
		CreatedAt:    article.CreatedAt,
		ModifiedAt:   article.UpdatedAt,
		IsLiked:      isLiked,
	}
}

func toArticleCreateOrUpdateResponse(article domain.Article) dto.ArticleCreateOrUpdateResponse {
	return dto.ArticleCreateOrUpdateResponse{
		ID:         article.ID,
		CreatedAt:  article.CreatedAt,
		ModifiedAt: article.UpdatedAt,
	}
}

// toProductImageURLsResponse pads the stored URLs with nulls up to slots.
// Lists already longer than slots are returned as they are.
func toProductImageURLsResponse(images []domain.ProductImage, slots int) dto.ProductImageURLsResponse {
	size := len(images)
	if slots > size {
		size = slots
	}

	urls := make([]*string, 0, size)
	for i := range images {
		urls = append(urls, &images[i].ImageURL)
	}
	for len(urls) < slots {
		urls = append(urls, nil)
	}

	return dto.ProductImageURLsResponse{ImageURLs: urls}
}

func toMemberResponse(member domain.Member) dto.MemberResponse {
	return dto.MemberResponse{
		ID:           member.ID,
		ExternalID:   member.ExternalID,
		Email:        member.Principal,
		Nickname:     member.Nickname,
		Address:      member.Address,
		ProfileImage: member.ProfileImage,
		AppleLevel:   member.AppleLevel,
	}
}

func toOfferResponse(offer domain.Offer) dto.OfferResponse {
	res := dto.OfferResponse{
		ID:         offer.ID,
		OffererID:  offer.OffererID,
		Price:      offer.Price,
		IsSelected: offer.IsSelected,
		CreatedAt:  offer.CreatedAt,
	}
	if offer.ArticleID != nil {
		res.ArticleID = *offer.ArticleID
	}

	return res
}
