package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/offer-fe/offer-be/internal/domain"
	"github.com/offer-fe/offer-be/internal/infrastructure/database/dbtest"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
	"github.com/stretchr/testify/suite"
)

type ArticleRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *sqlx.DB
	repo    ArticleRepository
	members MemberRepository
	seller  int64
	buyer   int64
}

func (s *ArticleRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = dbtest.Open(s.T())
	s.repo = CreateArticleRepository(s.db)
	s.members = CreateMemberRepository(s.db)
	s.seller = s.addMember("seller@offer.com")
	s.buyer = s.addMember("buyer@offer.com")
}

func (s *ArticleRepositoryTestSuite) addMember(principal string) int64 {
	id, err := s.members.AddMember(s.ctx, domain.Member{
		Principal:  principal,
		ExternalID: "01HX" + principal,
		Nickname:   principal,
		Address:    "Seoul",
		AppleLevel: domain.InitialAppleLevel,
	})
	s.Require().NoError(err)
	return id
}

func (s *ArticleRepositoryTestSuite) addArticle(writerID int64, categoryCode int, tradeStatusCode int, price int64) int64 {
	id, err := s.repo.AddArticle(s.ctx, domain.Article{
		WriterID:        writerID,
		Title:           "title",
		Content:         "content",
		CategoryCode:    categoryCode,
		TradeArea:       "Seoul",
		Quantity:        1,
		Price:           price,
		TradeStatusCode: tradeStatusCode,
	})
	s.Require().NoError(err)
	return id
}

func (s *ArticleRepositoryTestSuite) ids(articles []domain.Article) []int64 {
	res := make([]int64, 0, len(articles))
	for _, a := range articles {
		res = append(res, a.ID)
	}
	return res
}

func (s *ArticleRepositoryTestSuite) TestGetArticleByID() {
	id := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)

	article, err := s.repo.GetArticleByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, article.ID)
	s.Equal(s.seller, article.WriterID)
	s.Equal(int64(0), article.ViewCount)
	s.Nil(article.MainImageURL)
	s.NotZero(article.CreatedAt)

	missing, err := s.repo.GetArticleByID(s.ctx, id+100)
	s.Require().NoError(err)
	s.Zero(missing.ID)
}

func (s *ArticleRepositoryTestSuite) TestIncreaseViewCount() {
	id := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)

	for i := 0; i < 4; i++ {
		s.Require().NoError(s.repo.IncreaseViewCount(s.ctx, id))
	}

	article, err := s.repo.GetArticleByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(4), article.ViewCount)
}

func (s *ArticleRepositoryTestSuite) TestListingQueries() {
	a1 := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 3000)
	a2 := s.addArticle(s.seller, 2, domain.TradeStatusCompleted, 1000)
	a3 := s.addArticle(s.buyer, 1, domain.TradeStatusReserved, 2000)
	a4 := s.addArticle(s.buyer, 3, domain.TradeStatusCompleted, 4000)

	filter := pkgdto.Filter{Sort: "id,asc"}.Normalize()

	data, total, err := s.repo.GetArticles(s.ctx, filter)
	s.Require().NoError(err)
	s.Equal(int64(4), total)
	s.Equal([]int64{a1, a2, a3, a4}, s.ids(data))

	data, total, err = s.repo.GetArticlesByCategory(s.ctx, filter, 1)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Equal([]int64{a1, a3}, s.ids(data))

	data, _, err = s.repo.GetArticlesByWriter(s.ctx, filter, s.seller)
	s.Require().NoError(err)
	s.Equal([]int64{a1, a2}, s.ids(data))

	data, _, err = s.repo.GetArticlesByWriterAndTradeStatus(s.ctx, filter, s.seller, domain.TradeStatusCompleted)
	s.Require().NoError(err)
	s.Equal([]int64{a2}, s.ids(data))

	data, _, err = s.repo.GetArticlesByWriterInProgress(s.ctx, filter, s.buyer)
	s.Require().NoError(err)
	s.Equal([]int64{a3}, s.ids(data))

	data, _, err = s.repo.GetArticlesByTradeStatus(s.ctx, filter, domain.TradeStatusCompleted)
	s.Require().NoError(err)
	s.Equal([]int64{a2, a4}, s.ids(data))

	data, _, err = s.repo.GetArticlesInProgress(s.ctx, filter)
	s.Require().NoError(err)
	s.Equal([]int64{a1, a3}, s.ids(data))
}

func (s *ArticleRepositoryTestSuite) TestListingPagingAndSort() {
	a1 := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 3000)
	a2 := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)
	a3 := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 2000)

	data, total, err := s.repo.GetArticles(s.ctx, pkgdto.Filter{Sort: "price,asc", Limit: 2, Page: 1}.Normalize())
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Equal([]int64{a2, a3}, s.ids(data))

	data, _, err = s.repo.GetArticles(s.ctx, pkgdto.Filter{Sort: "price,asc", Limit: 2, Page: 2}.Normalize())
	s.Require().NoError(err)
	s.Equal([]int64{a1}, s.ids(data))
}

func (s *ArticleRepositoryTestSuite) TestLikedOfferedAndBought() {
	selling := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)
	completed := s.addArticle(s.seller, 1, domain.TradeStatusCompleted, 1000)
	other := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)

	s.Require().NoError(s.repo.AddLike(s.ctx, domain.LikeArticle{MemberID: s.buyer, ArticleID: &selling}))
	s.Require().NoError(s.repo.AddLike(s.ctx, domain.LikeArticle{MemberID: s.buyer, ArticleID: &completed}))

	_, err := s.repo.AddOffer(s.ctx, domain.Offer{ArticleID: &selling, OffererID: s.buyer, Price: 900})
	s.Require().NoError(err)
	offerID, err := s.repo.AddOffer(s.ctx, domain.Offer{ArticleID: &completed, OffererID: s.buyer, Price: 800})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.SelectOffer(s.ctx, offerID))

	filter := pkgdto.Filter{}.Normalize()

	data, _, err := s.repo.GetLikedArticles(s.ctx, filter, s.buyer, false)
	s.Require().NoError(err)
	s.Equal([]int64{selling}, s.ids(data))

	data, _, err = s.repo.GetLikedArticles(s.ctx, filter, s.buyer, true)
	s.Require().NoError(err)
	s.Equal([]int64{completed}, s.ids(data))

	data, _, err = s.repo.GetOfferedArticles(s.ctx, filter, s.buyer, false)
	s.Require().NoError(err)
	s.Equal([]int64{selling}, s.ids(data))

	data, _, err = s.repo.GetBoughtArticles(s.ctx, filter, s.buyer)
	s.Require().NoError(err)
	s.Equal([]int64{completed}, s.ids(data))

	liked, err := s.repo.GetLikedArticleIDs(s.ctx, s.buyer, []int64{selling, completed, other})
	s.Require().NoError(err)
	s.Equal(map[int64]bool{selling: true, completed: true}, liked)

	isLiked, err := s.repo.IsLiked(s.ctx, s.buyer, other)
	s.Require().NoError(err)
	s.False(isLiked)

	s.Require().NoError(s.repo.DeleteLike(s.ctx, s.buyer, selling))
	isLiked, err = s.repo.IsLiked(s.ctx, s.buyer, selling)
	s.Require().NoError(err)
	s.False(isLiked)
}

func (s *ArticleRepositoryTestSuite) TestOffers() {
	articleID := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)

	first, err := s.repo.AddOffer(s.ctx, domain.Offer{ArticleID: &articleID, OffererID: s.buyer, Price: 900})
	s.Require().NoError(err)
	second, err := s.repo.AddOffer(s.ctx, domain.Offer{ArticleID: &articleID, OffererID: s.buyer, Price: 950})
	s.Require().NoError(err)

	offers, total, err := s.repo.GetOffersByArticleID(s.ctx, pkgdto.Filter{}.Normalize(), articleID)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Equal(second, offers[0].ID)
	s.Equal(first, offers[1].ID)

	s.Require().NoError(s.repo.SelectOffer(s.ctx, first))
	offer, err := s.repo.GetOfferByID(s.ctx, first)
	s.Require().NoError(err)
	s.True(offer.IsSelected)

	missing, err := s.repo.GetOfferByID(s.ctx, second+10)
	s.Require().NoError(err)
	s.Zero(missing.ID)
}

func (s *ArticleRepositoryTestSuite) TestProductImagesAndReferencedURLs() {
	articleID := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)

	s.Require().NoError(s.repo.AddProductImages(s.ctx, []domain.ProductImage{
		{ArticleID: &articleID, ImageURL: "https://x/1.png"},
		{ArticleID: &articleID, ImageURL: "https://x/2.png"},
	}))
	s.Require().NoError(s.repo.AddProductImages(s.ctx, nil))

	images, err := s.repo.GetProductImages(s.ctx, articleID)
	s.Require().NoError(err)
	s.Require().Len(images, 2)
	s.Equal("https://x/1.png", images[0].ImageURL)
	s.Equal("https://x/2.png", images[1].ImageURL)

	profile := "https://x/profile.png"
	member, err := s.members.GetMemberByID(s.ctx, s.buyer)
	s.Require().NoError(err)
	member.ProfileImage = &profile
	s.Require().NoError(s.members.UpdateMemberProfile(s.ctx, member))

	referenced, err := s.repo.GetReferencedImageURLs(s.ctx, []string{"https://x/1.png", "https://x/profile.png", "https://x/orphan.png"})
	s.Require().NoError(err)
	s.Equal(map[string]bool{"https://x/1.png": true, "https://x/profile.png": true}, referenced)

	s.Require().NoError(s.repo.DeleteProductImagesByArticleID(s.ctx, articleID))
	images, err = s.repo.GetProductImages(s.ctx, articleID)
	s.Require().NoError(err)
	s.Empty(images)
}

func (s *ArticleRepositoryTestSuite) TestNullifyReferences() {
	articleID := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)

	_, err := s.repo.AddOffer(s.ctx, domain.Offer{ArticleID: &articleID, OffererID: s.buyer, Price: 900})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.AddLike(s.ctx, domain.LikeArticle{MemberID: s.buyer, ArticleID: &articleID}))
	s.db.MustExec("INSERT INTO reviews(article_id, reviewer_id, reviewee_id, score, content, created_at) VALUES (?, ?, ?, 5, 'good', 0)", articleID, s.buyer, s.seller)
	s.db.MustExec("INSERT INTO message_rooms(article_id, member_id, partner_id, created_at) VALUES (?, ?, ?, 0)", articleID, s.buyer, s.seller)

	s.Require().NoError(s.repo.NullifyOfferArticle(s.ctx, articleID))
	s.Require().NoError(s.repo.NullifyLikeArticle(s.ctx, articleID))
	s.Require().NoError(s.repo.NullifyReviewArticle(s.ctx, articleID))
	s.Require().NoError(s.repo.NullifyMessageRoomArticle(s.ctx, articleID))
	s.Require().NoError(s.repo.DeleteArticle(s.ctx, articleID))

	var reviews []domain.Review
	s.Require().NoError(s.db.Select(&reviews, "SELECT * FROM reviews"))
	s.Require().Len(reviews, 1)
	s.Nil(reviews[0].ArticleID)

	var rooms []domain.MessageRoom
	s.Require().NoError(s.db.Select(&rooms, "SELECT * FROM message_rooms"))
	s.Require().Len(rooms, 1)
	s.Nil(rooms[0].ArticleID)

	var offers []domain.Offer
	s.Require().NoError(s.db.Select(&offers, "SELECT * FROM offers"))
	s.Require().Len(offers, 1)
	s.Nil(offers[0].ArticleID)

	article, err := s.repo.GetArticleByID(s.ctx, articleID)
	s.Require().NoError(err)
	s.Zero(article.ID)
}

func (s *ArticleRepositoryTestSuite) TestHandleTrx_RollbackOnError() {
	articleID := s.addArticle(s.seller, 1, domain.TradeStatusSelling, 1000)
	boom := errors.New("boom")

	err := s.repo.HandleTrx(s.ctx, func(ctx context.Context, repo ArticleRepository) error {
		if err := repo.UpdateTradeStatus(ctx, articleID, domain.TradeStatusCompleted); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	article, err := s.repo.GetArticleByID(s.ctx, articleID)
	s.Require().NoError(err)
	s.Equal(domain.TradeStatusSelling, article.TradeStatusCode)

	err = s.repo.HandleTrx(s.ctx, func(ctx context.Context, repo ArticleRepository) error {
		return repo.UpdateTradeStatus(ctx, articleID, domain.TradeStatusCompleted)
	})
	s.Require().NoError(err)

	article, err = s.repo.GetArticleByID(s.ctx, articleID)
	s.Require().NoError(err)
	s.Equal(domain.TradeStatusCompleted, article.TradeStatusCode)
}

func TestArticleRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ArticleRepositoryTestSuite))
}
