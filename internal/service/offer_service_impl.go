package service

import (
	"context"

	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/dto"
	"github.com/offer-fe/offer-be/internal/repository"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/rs/zerolog/log"
)

type OfferServiceImpl struct {
	repository repository.ArticleRepository
	members    repository.MemberRepository
	notifier   Notifier
}

func CreateOfferService(repository repository.ArticleRepository, members repository.MemberRepository, notifier Notifier) OfferService {
	return &OfferServiceImpl{
		repository: repository,
		members:    members,
		notifier:   notifier,
	}
}

func (s *OfferServiceImpl) AddOffer(ctx context.Context, articleID int64, req dto.OfferRequest, auth dto.Authentication) (res dto.OfferResponse, err error) {
	offerer, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	article, err := s.repository.GetArticleByID(ctx, articleID)
	if err != nil {
		return res, err
	}
	if article.ID == 0 {
		return res, errs.ErrArticleNotFound
	}
	if article.IsWrittenBy(offerer.ID) {
		return res, errs.ErrPermissionDenied
	}
	if domain.IsCompleted(article.TradeStatusCode) || req.Price <= 0 {
		return res, errs.ErrInvalidOffer
	}

	offer := domain.Offer{
		ArticleID: &article.ID,
		OffererID: offerer.ID,
		Price:     req.Price,
	}
	offer.ID, err = s.repository.AddOffer(ctx, offer)
	if err != nil {
		return res, err
	}

	offer, err = s.repository.GetOfferByID(ctx, offer.ID)
	if err != nil {
		return res, err
	}

	s.notifyWriter(ctx, article, offer)

	return toOfferResponse(offer), nil
}

func (s *OfferServiceImpl) notifyWriter(ctx context.Context, article domain.Article, offer domain.Offer) {
	writer, err := s.members.GetMemberByID(ctx, article.WriterID)
	if err != nil || writer.ID == 0 {
		log.Ctx(ctx).Error().Err(err).Str("component", "notifyWriter").Int64("writer_id", article.WriterID).Msg("writer lookup failed")
		return
	}

	if err := s.notifier.NotifyOffer(ctx, writer.Principal, article.Title, offer.Price); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "notifyWriter").Int64("offer_id", offer.ID).Msg("")
	}
}

func (s *OfferServiceImpl) GetOffers(ctx context.Context, articleID int64, filter pkgdto.Filter) (res pkgdto.PaginationResponse, err error) {
	article, err := s.repository.GetArticleByID(ctx, articleID)
	if err != nil {
		return res, err
	}
	if article.ID == 0 {
		return res, errs.ErrArticleNotFound
	}

	filter = filter.Normalize()
	offers, total, err := s.repository.GetOffersByArticleID(ctx, filter, articleID)
	if err != nil {
		return res, err
	}

	records := make([]dto.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		records = append(records, toOfferResponse(offer))
	}

	return pkgdto.NewPaginationResponse(filter, total, records), nil
}

func (s *OfferServiceImpl) SelectOffer(ctx context.Context, offerID int64, auth dto.Authentication) (res dto.OfferResponse, err error) {
	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	offer, err := s.repository.GetOfferByID(ctx, offerID)
	if err != nil {
		return res, err
	}
	if offer.ID == 0 {
		return res, errs.ErrOfferNotFound
	}
	if offer.ArticleID == nil {
		return res, errs.ErrArticleNotFound
	}

	article, err := s.repository.GetArticleByID(ctx, *offer.ArticleID)
	if err != nil {
		return res, err
	}
	if article.ID == 0 {
		return res, errs.ErrArticleNotFound
	}
	if !article.IsWrittenBy(member.ID) {
		return res, errs.ErrPermissionDenied
	}

	if err := s.repository.SelectOffer(ctx, offer.ID); err != nil {
		return res, err
	}
	offer.IsSelected = true

	return toOfferResponse(offer), nil
}
