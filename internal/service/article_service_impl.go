package service

import (
	"context"
	"strconv"

	"github.com/offer-fe/offer-be/config"
	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/dto"
	objectstorage "github.com/offer-fe/offer-be/internal/infrastructure/object-storage"
	"github.com/offer-fe/offer-be/internal/repository"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
	"github.com/offer-fe/offer-be/pkg/errs"
	"github.com/rs/zerolog/log"
)

type ArticleServiceImpl struct {
	repository repository.ArticleRepository
	members    repository.MemberRepository
	storage    objectstorage.Storage
	publisher  EventPublisher
	config     config.ArticleConfig
}

func CreateArticleService(repository repository.ArticleRepository, members repository.MemberRepository, storage objectstorage.Storage, publisher EventPublisher, config config.ArticleConfig) ArticleService {
	return &ArticleServiceImpl{
		repository: repository,
		members:    members,
		storage:    storage,
		publisher:  publisher,
		config:     config,
	}
}

// dependentCleanup detaches or removes one kind of row that points at an article.
type dependentCleanup struct {
	name string
	run  func(repo repository.ArticleRepository, ctx context.Context, articleID int64) error
}

// articleDependents runs in order inside the delete transaction, before the article row goes.
var articleDependents = []dependentCleanup{
	{name: "offer", run: repository.ArticleRepository.NullifyOfferArticle},
	{name: "like_article", run: repository.ArticleRepository.NullifyLikeArticle},
	{name: "review", run: repository.ArticleRepository.NullifyReviewArticle},
	{name: "message_room", run: repository.ArticleRepository.NullifyMessageRoomArticle},
	{name: "product_image", run: repository.ArticleRepository.DeleteProductImagesByArticleID},
}

func resolveMember(ctx context.Context, members repository.MemberRepository, loginID string) (domain.Member, error) {
	member, err := members.GetMemberByPrincipal(ctx, loginID)
	if err != nil {
		return domain.Member{}, err
	}
	if member.ID == 0 {
		return domain.Member{}, errs.ErrMemberNotFound
	}

	return member, nil
}

func (s *ArticleServiceImpl) GetCodeAndNameInfos(ctx context.Context) dto.CodeAndNameInfosResponse {
	return dto.CodeAndNameInfosResponse{
		Categories:    domain.Categories,
		TradeStatuses: domain.TradeStatuses,
	}
}

func (s *ArticleServiceImpl) UploadImages(ctx context.Context, files []dto.ImageFile) (res dto.ImageURLsResponse, err error) {
	urls, err := uploadSequentially(ctx, s.storage, files, s.config.ProductImgDir)
	if err != nil {
		return res, err
	}

	return dto.ImageURLsResponse{ImageURLs: urls}, nil
}

func (s *ArticleServiceImpl) isStorableImageURL(url string) bool {
	return url != "" && url != s.config.NoImage
}

// firstStorableImageURL picks the main image of a new article.
func (s *ArticleServiceImpl) firstStorableImageURL(urls []string) *string {
	for _, url := range urls {
		if s.isStorableImageURL(url) {
			main := url
			return &main
		}
	}
	return nil
}

// leadingImageURL picks the main image of an updated article. Only the first
// submitted entry counts, a sentinel or empty one clears the main image.
func (s *ArticleServiceImpl) leadingImageURL(urls []string) *string {
	if len(urls) == 0 || !s.isStorableImageURL(urls[0]) {
		return nil
	}
	main := urls[0]
	return &main
}

func (s *ArticleServiceImpl) productImages(articleID int64, urls []string) []domain.ProductImage {
	images := make([]domain.ProductImage, 0, len(urls))
	for _, url := range urls {
		if !s.isStorableImageURL(url) {
			continue
		}
		id := articleID
		images = append(images, domain.ProductImage{ArticleID: &id, ImageURL: url})
	}
	return images
}

func discardedImageURLs(prior []domain.ProductImage, submitted []string) []string {
	kept := make(map[string]bool, len(submitted))
	for _, url := range submitted {
		kept[url] = true
	}

	var discarded []string
	for _, image := range prior {
		if !kept[image.ImageURL] {
			discarded = append(discarded, image.ImageURL)
		}
	}
	return discarded
}

func (s *ArticleServiceImpl) CreateOrUpdate(ctx context.Context, req dto.ArticleCreateOrUpdateRequest, auth dto.Authentication) (res dto.ArticleCreateOrUpdateResponse, err error) {
	writer, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	if _, ok := domain.CategoryOf(req.CategoryCode); !ok {
		return res, errs.ErrInvalidCategoryCode
	}

	created := req.ID == 0
	var article domain.Article
	var discarded []string

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.ArticleRepository) error {
		if created {
			id, err := repo.AddArticle(ctx, domain.Article{
				WriterID:        writer.ID,
				Title:           req.Title,
				Content:         req.Content,
				CategoryCode:    req.CategoryCode,
				TradeArea:       req.TradeArea,
				Quantity:        req.Quantity,
				Price:           req.Price,
				TradeStatusCode: domain.TradeStatusSelling,
				MainImageURL:    s.firstStorableImageURL(req.ImageURLs),
				ViewCount:       0,
			})
			if err != nil {
				return err
			}
			article.ID = id
		} else {
			existing, err := repo.GetArticleByID(ctx, req.ID)
			if err != nil {
				return err
			}
			if existing.ID == 0 {
				return errs.ErrArticleNotFound
			}
			if !existing.IsWrittenBy(writer.ID) {
				return errs.ErrPermissionDenied
			}

			existing.Title = req.Title
			existing.Content = req.Content
			existing.CategoryCode = req.CategoryCode
			existing.TradeArea = req.TradeArea
			existing.Quantity = req.Quantity
			existing.Price = req.Price
			existing.MainImageURL = s.leadingImageURL(req.ImageURLs)

			if err := repo.UpdateArticle(ctx, existing); err != nil {
				return err
			}

			prior, err := repo.GetProductImages(ctx, existing.ID)
			if err != nil {
				return err
			}
			discarded = discardedImageURLs(prior, req.ImageURLs)

			if err := repo.DeleteProductImagesByArticleID(ctx, existing.ID); err != nil {
				return err
			}
			article.ID = existing.ID
		}

		if err := repo.AddProductImages(ctx, s.productImages(article.ID, req.ImageURLs)); err != nil {
			return err
		}

		stored, err := repo.GetArticleByID(ctx, article.ID)
		if err != nil {
			return err
		}
		article = stored

		return nil
	})
	if err != nil {
		return res, err
	}

	eventType := dto.EventArticleUpdated
	if created {
		eventType = dto.EventArticleCreated
	}
	s.publish(ctx, article.ID, eventType, articleEvent(article))
	if len(discarded) > 0 {
		s.publish(ctx, article.ID, dto.EventArticleImagesDiscarded, dto.ImagesDiscardedEvent{ArticleID: article.ID, ImageURLs: discarded})
	}

	return toArticleCreateOrUpdateResponse(article), nil
}

// loadOwnedArticle returns the article when the caller wrote it.
func (s *ArticleServiceImpl) loadOwnedArticle(ctx context.Context, articleID int64, auth dto.Authentication) (domain.Article, error) {
	article, err := s.repository.GetArticleByID(ctx, articleID)
	if err != nil {
		return domain.Article{}, err
	}
	if article.ID == 0 {
		return domain.Article{}, errs.ErrArticleNotFound
	}

	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return domain.Article{}, err
	}
	if !article.IsWrittenBy(member.ID) {
		return domain.Article{}, errs.ErrPermissionDenied
	}

	return article, nil
}

func (s *ArticleServiceImpl) UpdateTradeStatus(ctx context.Context, articleID int64, tradeStatusCode int, auth dto.Authentication) (res dto.TradeStatusResponse, err error) {
	article, err := s.loadOwnedArticle(ctx, articleID, auth)
	if err != nil {
		return res, err
	}

	tradeStatus, ok := domain.TradeStatusOf(tradeStatusCode)
	if !ok {
		return res, errs.ErrInvalidTradeStatusCode
	}

	if err := s.repository.UpdateTradeStatus(ctx, article.ID, tradeStatus.Code); err != nil {
		return res, err
	}

	article.TradeStatusCode = tradeStatus.Code
	s.publish(ctx, article.ID, dto.EventArticleTradeStatusUpdated, articleEvent(article))

	return dto.TradeStatusResponse{ArticleID: article.ID, TradeStatus: tradeStatus}, nil
}

func (s *ArticleServiceImpl) GetImageURLs(ctx context.Context, articleID int64) (res dto.ProductImageURLsResponse, err error) {
	article, err := s.repository.GetArticleByID(ctx, articleID)
	if err != nil {
		return res, err
	}
	if article.ID == 0 {
		return res, errs.ErrArticleNotFound
	}

	images, err := s.repository.GetProductImages(ctx, articleID)
	if err != nil {
		return res, err
	}

	return toProductImageURLsResponse(images, s.config.NumOfRegisterableImg), nil
}

func (s *ArticleServiceImpl) DeleteArticle(ctx context.Context, articleID int64, auth dto.Authentication) (err error) {
	article, err := s.loadOwnedArticle(ctx, articleID, auth)
	if err != nil {
		return err
	}

	var imageURLs []string
	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.ArticleRepository) error {
		images, err := repo.GetProductImages(ctx, article.ID)
		if err != nil {
			return err
		}
		for _, image := range images {
			imageURLs = append(imageURLs, image.ImageURL)
		}

		for _, dependent := range articleDependents {
			if err := dependent.run(repo, ctx, article.ID); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "DeleteArticle").Str("dependent", dependent.name).Msg("")
				return err
			}
		}

		return repo.DeleteArticle(ctx, article.ID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, article.ID, dto.EventArticleDeleted, articleEvent(article))
	if len(imageURLs) > 0 {
		s.publish(ctx, article.ID, dto.EventArticleImagesDiscarded, dto.ImagesDiscardedEvent{ArticleID: article.ID, ImageURLs: imageURLs})
	}

	return nil
}

func (s *ArticleServiceImpl) GetArticle(ctx context.Context, articleID int64, auth *dto.Authentication) (res dto.ArticleDetailResponse, err error) {
	article, err := s.repository.GetArticleByID(ctx, articleID)
	if err != nil {
		return res, err
	}
	if article.ID == 0 {
		return res, errs.ErrArticleNotFound
	}

	writer, err := s.members.GetMemberByID(ctx, article.WriterID)
	if err != nil {
		return res, err
	}

	isLiked := false
	if auth != nil {
		member, err := resolveMember(ctx, s.members, auth.LoginID)
		if err != nil {
			return res, err
		}

		isLiked, err = s.repository.IsLiked(ctx, member.ID, article.ID)
		if err != nil {
			return res, err
		}
	}

	// counted only once every lookup succeeded
	if err := s.repository.IncreaseViewCount(ctx, article.ID); err != nil {
		return res, err
	}
	article.ViewCount++

	return toArticleDetailResponse(article, writer, isLiked), nil
}

func (s *ArticleServiceImpl) GetArticles(ctx context.Context, filter pkgdto.Filter, cond dto.ArticleListCondition, auth *dto.Authentication) (res pkgdto.PaginationResponse, err error) {
	variant, err := selectListingVariant(cond)
	if err != nil {
		return res, err
	}

	filter = filter.Normalize()
	articles, total, err := listingQueries[variant](ctx, s.repository, filter, cond)
	if err != nil {
		return res, err
	}

	records, err := s.withLikeFlags(ctx, articles, auth)
	if err != nil {
		return res, err
	}

	return pkgdto.NewPaginationResponse(filter, total, records), nil
}

// withLikeFlags maps articles to brief views. Every flag is false for an anonymous caller.
func (s *ArticleServiceImpl) withLikeFlags(ctx context.Context, articles []domain.Article, auth *dto.Authentication) ([]dto.ArticleBriefViewResponse, error) {
	records := make([]dto.ArticleBriefViewResponse, 0, len(articles))
	if auth == nil {
		for _, article := range articles {
			records = append(records, toArticleBriefViewResponse(article, false))
		}
		return records, nil
	}

	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ID)
	}

	liked, err := s.repository.GetLikedArticleIDs(ctx, member.ID, ids)
	if err != nil {
		return nil, err
	}

	for _, article := range articles {
		records = append(records, toArticleBriefViewResponse(article, liked[article.ID]))
	}

	return records, nil
}

func (s *ArticleServiceImpl) GetBoughtArticles(ctx context.Context, filter pkgdto.Filter, auth dto.Authentication) (res pkgdto.PaginationResponse, err error) {
	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	filter = filter.Normalize()
	articles, total, err := s.repository.GetBoughtArticles(ctx, filter, member.ID)
	if err != nil {
		return res, err
	}

	records, err := s.withLikeFlags(ctx, articles, &auth)
	if err != nil {
		return res, err
	}

	return pkgdto.NewPaginationResponse(filter, total, records), nil
}

// completedFilter reports whether a trade status filter asks for completed
// trades. Zero means the filter was omitted and selects trades in progress.
func completedFilter(tradeStatusCode int) (bool, error) {
	if tradeStatusCode == 0 {
		return false, nil
	}
	if _, ok := domain.TradeStatusOf(tradeStatusCode); !ok {
		return false, errs.ErrInvalidTradeStatusCode
	}
	return domain.IsCompleted(tradeStatusCode), nil
}

func (s *ArticleServiceImpl) GetMyOfferArticles(ctx context.Context, filter pkgdto.Filter, tradeStatusCode int, auth dto.Authentication) (res pkgdto.PaginationResponse, err error) {
	completed, err := completedFilter(tradeStatusCode)
	if err != nil {
		return res, err
	}

	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	filter = filter.Normalize()
	articles, total, err := s.repository.GetOfferedArticles(ctx, filter, member.ID, completed)
	if err != nil {
		return res, err
	}

	records, err := s.withLikeFlags(ctx, articles, &auth)
	if err != nil {
		return res, err
	}

	return pkgdto.NewPaginationResponse(filter, total, records), nil
}

func (s *ArticleServiceImpl) GetLikedArticles(ctx context.Context, filter pkgdto.Filter, tradeStatusCode int, auth dto.Authentication) (res pkgdto.PaginationResponse, err error) {
	completed, err := completedFilter(tradeStatusCode)
	if err != nil {
		return res, err
	}

	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	filter = filter.Normalize()
	articles, total, err := s.repository.GetLikedArticles(ctx, filter, member.ID, completed)
	if err != nil {
		return res, err
	}

	records := make([]dto.ArticleBriefViewResponse, 0, len(articles))
	for _, article := range articles {
		records = append(records, toArticleBriefViewResponse(article, true))
	}

	return pkgdto.NewPaginationResponse(filter, total, records), nil
}

func (s *ArticleServiceImpl) ToggleLike(ctx context.Context, articleID int64, auth dto.Authentication) (res dto.LikeToggleResponse, err error) {
	member, err := resolveMember(ctx, s.members, auth.LoginID)
	if err != nil {
		return res, err
	}

	var isLiked bool
	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.ArticleRepository) error {
		article, err := repo.GetArticleByID(ctx, articleID)
		if err != nil {
			return err
		}
		if article.ID == 0 {
			return errs.ErrArticleNotFound
		}

		liked, err := repo.IsLiked(ctx, member.ID, article.ID)
		if err != nil {
			return err
		}

		if liked {
			isLiked = false
			return repo.DeleteLike(ctx, member.ID, article.ID)
		}

		isLiked = true
		return repo.AddLike(ctx, domain.LikeArticle{MemberID: member.ID, ArticleID: &article.ID})
	})
	if err != nil {
		return res, err
	}

	return dto.LikeToggleResponse{ArticleID: articleID, IsLiked: isLiked}, nil
}

func articleEvent(article domain.Article) dto.ArticleEvent {
	return dto.ArticleEvent{
		ArticleID:       article.ID,
		WriterID:        article.WriterID,
		TradeStatusCode: article.TradeStatusCode,
	}
}

// publish sends an event after the write committed. Failures are only logged.
func (s *ArticleServiceImpl) publish(ctx context.Context, articleID int64, eventType string, data interface{}) {
	err := s.publisher.Publish(ctx, strconv.FormatInt(articleID, 10), dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Int64("article_id", articleID).Msg("")
	}
}
