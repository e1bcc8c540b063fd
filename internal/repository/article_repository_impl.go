package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/offer-fe/offer-be/internal/domain"
	pkgdto "github.com/offer-fe/offer-be/pkg/dto"
	"github.com/rs/zerolog/log"
)

type ArticleRepositoryImpl struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func CreateArticleRepository(db *sqlx.DB) ArticleRepository {
	return &ArticleRepositoryImpl{
		db:  db,
		ext: db,
	}
}

func (r *ArticleRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ArticleRepository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	txRepo := &ArticleRepositoryImpl{
		db:  r.db,
		ext: tx,
	}

	err = fn(ctx, txRepo)

	return err
}

func (r *ArticleRepositoryImpl) GetArticleByID(ctx context.Context, id int64) (data domain.Article, err error) {
	err = sqlx.GetContext(ctx, r.ext, &data, r.ext.Rebind("SELECT * FROM articles WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Article{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetArticleByID").Msg("")
		return
	}

	return
}

func (r *ArticleRepositoryImpl) AddArticle(ctx context.Context, data domain.Article) (id int64, err error) {
	timestamp := time.Now().UnixMilli()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	query, args, err := r.ext.BindNamed("INSERT INTO articles(writer_id, title, content, category_code, trade_area, quantity, price, trade_status_code, main_image_url, view_count, created_at, updated_at) VALUES (:writer_id, :title, :content, :category_code, :trade_area, :quantity, :price, :trade_status_code, :main_image_url, :view_count, :created_at, :updated_at) RETURNING id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddArticle").Msg("")
		return
	}

	err = sqlx.GetContext(ctx, r.ext, &id, query, args...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddArticle").Msg("")
		return
	}

	return id, nil
}

func (r *ArticleRepositoryImpl) UpdateArticle(ctx context.Context, data domain.Article) (err error) {
	data.UpdatedAt = time.Now().UnixMilli()

	_, err = sqlx.NamedExecContext(ctx, r.ext, "UPDATE articles SET title=:title, content=:content, category_code=:category_code, trade_area=:trade_area, quantity=:quantity, price=:price, main_image_url=:main_image_url, updated_at=:updated_at WHERE id=:id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateArticle").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) UpdateTradeStatus(ctx context.Context, id int64, tradeStatusCode int) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind("UPDATE articles SET trade_status_code = ?, updated_at = ? WHERE id = ?"), tradeStatusCode, time.Now().UnixMilli(), id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateTradeStatus").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) IncreaseViewCount(ctx context.Context, id int64) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind("UPDATE articles SET view_count = view_count + 1 WHERE id = ?"), id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IncreaseViewCount").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) DeleteArticle(ctx context.Context, id int64) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind("DELETE FROM articles WHERE id = ?"), id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteArticle").Msg("")
		return
	}

	return nil
}

// listArticles runs a count and a page query sharing the same WHERE clause over alias a.
func (r *ArticleRepositoryImpl) listArticles(ctx context.Context, component string, filter pkgdto.Filter, where string, args ...interface{}) (data []domain.Article, total int64, err error) {
	err = sqlx.GetContext(ctx, r.ext, &total, r.ext.Rebind("SELECT COUNT(a.id) FROM articles a "+where), args...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT a.* FROM articles a %s %s LIMIT ? OFFSET ?", where, filter.OrderBy("a"))

	pageArgs := make([]interface{}, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, filter.Limit, filter.Offset())

	data = []domain.Article{}
	err = sqlx.SelectContext(ctx, r.ext, &data, r.ext.Rebind(query), pageArgs...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return nil, 0, err
	}

	return data, total, nil
}

func (r *ArticleRepositoryImpl) GetArticles(ctx context.Context, filter pkgdto.Filter) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticles", filter, "")
}

func (r *ArticleRepositoryImpl) GetArticlesByCategory(ctx context.Context, filter pkgdto.Filter, categoryCode int) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticlesByCategory", filter, "WHERE a.category_code = ?", categoryCode)
}

func (r *ArticleRepositoryImpl) GetArticlesByWriter(ctx context.Context, filter pkgdto.Filter, writerID int64) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticlesByWriter", filter, "WHERE a.writer_id = ?", writerID)
}

func (r *ArticleRepositoryImpl) GetArticlesByWriterAndTradeStatus(ctx context.Context, filter pkgdto.Filter, writerID int64, tradeStatusCode int) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticlesByWriterAndTradeStatus", filter, "WHERE a.writer_id = ? AND a.trade_status_code = ?", writerID, tradeStatusCode)
}

func (r *ArticleRepositoryImpl) GetArticlesByWriterInProgress(ctx context.Context, filter pkgdto.Filter, writerID int64) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticlesByWriterInProgress", filter, "WHERE a.writer_id = ? AND a.trade_status_code <> ?", writerID, domain.TradeStatusCompleted)
}

func (r *ArticleRepositoryImpl) GetArticlesByTradeStatus(ctx context.Context, filter pkgdto.Filter, tradeStatusCode int) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticlesByTradeStatus", filter, "WHERE a.trade_status_code = ?", tradeStatusCode)
}

func (r *ArticleRepositoryImpl) GetArticlesInProgress(ctx context.Context, filter pkgdto.Filter) (data []domain.Article, total int64, err error) {
	return r.listArticles(ctx, "GetArticlesInProgress", filter, "WHERE a.trade_status_code <> ?", domain.TradeStatusCompleted)
}

func statusCondition(completed bool) string {
	if completed {
		return "a.trade_status_code = ?"
	}
	return "a.trade_status_code <> ?"
}

func (r *ArticleRepositoryImpl) GetLikedArticles(ctx context.Context, filter pkgdto.Filter, memberID int64, completed bool) (data []domain.Article, total int64, err error) {
	where := "WHERE a.id IN (SELECT l.article_id FROM like_articles l WHERE l.member_id = ?) AND " + statusCondition(completed)
	return r.listArticles(ctx, "GetLikedArticles", filter, where, memberID, domain.TradeStatusCompleted)
}

func (r *ArticleRepositoryImpl) GetOfferedArticles(ctx context.Context, filter pkgdto.Filter, offererID int64, completed bool) (data []domain.Article, total int64, err error) {
	where := "WHERE a.id IN (SELECT o.article_id FROM offers o WHERE o.offerer_id = ?) AND " + statusCondition(completed)
	return r.listArticles(ctx, "GetOfferedArticles", filter, where, offererID, domain.TradeStatusCompleted)
}

func (r *ArticleRepositoryImpl) GetBoughtArticles(ctx context.Context, filter pkgdto.Filter, offererID int64) (data []domain.Article, total int64, err error) {
	where := "WHERE a.id IN (SELECT o.article_id FROM offers o WHERE o.offerer_id = ? AND o.is_selected = ?)"
	return r.listArticles(ctx, "GetBoughtArticles", filter, where, offererID, true)
}

func (r *ArticleRepositoryImpl) GetProductImages(ctx context.Context, articleID int64) (data []domain.ProductImage, err error) {
	data = []domain.ProductImage{}
	err = sqlx.SelectContext(ctx, r.ext, &data, r.ext.Rebind("SELECT * FROM product_images WHERE article_id = ? ORDER BY id"), articleID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductImages").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ArticleRepositoryImpl) AddProductImages(ctx context.Context, data []domain.ProductImage) (err error) {
	if len(data) == 0 {
		return nil
	}

	_, err = sqlx.NamedExecContext(ctx, r.ext, "INSERT INTO product_images(article_id, image_url) VALUES (:article_id, :image_url)", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProductImages").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) DeleteProductImagesByArticleID(ctx context.Context, articleID int64) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind("DELETE FROM product_images WHERE article_id = ?"), articleID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductImagesByArticleID").Msg("")
		return
	}

	return nil
}

// GetReferencedImageURLs reports which of urls are still used by a product
// image, an article main image or a member profile image.
func (r *ArticleRepositoryImpl) GetReferencedImageURLs(ctx context.Context, urls []string) (referenced map[string]bool, err error) {
	referenced = make(map[string]bool)
	if len(urls) == 0 {
		return referenced, nil
	}

	query, args, err := sqlx.In(`SELECT image_url FROM product_images WHERE image_url IN (?)
		UNION SELECT main_image_url FROM articles WHERE main_image_url IN (?)
		UNION SELECT profile_image FROM members WHERE profile_image IN (?)`, urls, urls, urls)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetReferencedImageURLs").Msg("")
		return nil, err
	}

	var found []string
	err = sqlx.SelectContext(ctx, r.ext, &found, r.ext.Rebind(query), args...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetReferencedImageURLs").Msg("")
		return nil, err
	}

	for _, url := range found {
		referenced[url] = true
	}

	return referenced, nil
}

func (r *ArticleRepositoryImpl) IsLiked(ctx context.Context, memberID int64, articleID int64) (liked bool, err error) {
	var count int64
	err = sqlx.GetContext(ctx, r.ext, &count, r.ext.Rebind("SELECT COUNT(id) FROM like_articles WHERE member_id = ? AND article_id = ?"), memberID, articleID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IsLiked").Msg("")
		return false, err
	}

	return count > 0, nil
}

func (r *ArticleRepositoryImpl) GetLikedArticleIDs(ctx context.Context, memberID int64, articleIDs []int64) (liked map[int64]bool, err error) {
	liked = make(map[int64]bool)
	if len(articleIDs) == 0 {
		return liked, nil
	}

	query, args, err := sqlx.In("SELECT article_id FROM like_articles WHERE member_id = ? AND article_id IN (?)", memberID, articleIDs)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetLikedArticleIDs").Msg("")
		return nil, err
	}

	var ids []int64
	err = sqlx.SelectContext(ctx, r.ext, &ids, r.ext.Rebind(query), args...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetLikedArticleIDs").Msg("")
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}

func (r *ArticleRepositoryImpl) AddLike(ctx context.Context, data domain.LikeArticle) (err error) {
	data.CreatedAt = time.Now().UnixMilli()

	_, err = sqlx.NamedExecContext(ctx, r.ext, "INSERT INTO like_articles(member_id, article_id, created_at) VALUES (:member_id, :article_id, :created_at)", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddLike").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) DeleteLike(ctx context.Context, memberID int64, articleID int64) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind("DELETE FROM like_articles WHERE member_id = ? AND article_id = ?"), memberID, articleID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteLike").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) AddOffer(ctx context.Context, data domain.Offer) (id int64, err error) {
	data.CreatedAt = time.Now().UnixMilli()

	query, args, err := r.ext.BindNamed("INSERT INTO offers(article_id, offerer_id, price, is_selected, created_at) VALUES (:article_id, :offerer_id, :price, :is_selected, :created_at) RETURNING id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOffer").Msg("")
		return
	}

	err = sqlx.GetContext(ctx, r.ext, &id, query, args...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOffer").Msg("")
		return
	}

	return id, nil
}

func (r *ArticleRepositoryImpl) GetOfferByID(ctx context.Context, id int64) (data domain.Offer, err error) {
	err = sqlx.GetContext(ctx, r.ext, &data, r.ext.Rebind("SELECT * FROM offers WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Offer{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOfferByID").Msg("")
		return
	}

	return
}

func (r *ArticleRepositoryImpl) GetOffersByArticleID(ctx context.Context, filter pkgdto.Filter, articleID int64) (data []domain.Offer, total int64, err error) {
	err = sqlx.GetContext(ctx, r.ext, &total, r.ext.Rebind("SELECT COUNT(id) FROM offers WHERE article_id = ?"), articleID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOffersByArticleID").Msg("")
		return nil, 0, err
	}

	data = []domain.Offer{}
	err = sqlx.SelectContext(ctx, r.ext, &data, r.ext.Rebind("SELECT * FROM offers WHERE article_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"), articleID, filter.Limit, filter.Offset())
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOffersByArticleID").Msg("")
		return nil, 0, err
	}

	return data, total, nil
}

func (r *ArticleRepositoryImpl) SelectOffer(ctx context.Context, id int64) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind("UPDATE offers SET is_selected = ? WHERE id = ?"), true, id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SelectOffer").Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) nullifyArticleReference(ctx context.Context, component string, table string, articleID int64) (err error) {
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind(fmt.Sprintf("UPDATE %s SET article_id = NULL WHERE article_id = ?", table)), articleID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return
	}

	return nil
}

func (r *ArticleRepositoryImpl) NullifyOfferArticle(ctx context.Context, articleID int64) (err error) {
	return r.nullifyArticleReference(ctx, "NullifyOfferArticle", "offers", articleID)
}

func (r *ArticleRepositoryImpl) NullifyLikeArticle(ctx context.Context, articleID int64) (err error) {
	return r.nullifyArticleReference(ctx, "NullifyLikeArticle", "like_articles", articleID)
}

func (r *ArticleRepositoryImpl) NullifyReviewArticle(ctx context.Context, articleID int64) (err error) {
	return r.nullifyArticleReference(ctx, "NullifyReviewArticle", "reviews", articleID)
}

func (r *ArticleRepositoryImpl) NullifyMessageRoomArticle(ctx context.Context, articleID int64) (err error) {
	return r.nullifyArticleReference(ctx, "NullifyMessageRoomArticle", "message_rooms", articleID)
}
