package dto

import "github.com/offer-fe/offer-be/internal/domain"

type WriterResponse struct {
	ID           int64   `json:"id"`
	Nickname     string  `json:"nickname"`
	Address      string  `json:"address"`
	ProfileImage *string `json:"profile_image_url"`
	AppleLevel   int     `json:"apple_level"`
}

type ArticleBriefViewResponse struct {
	ID           int64              `json:"id"`
	Title        string             `json:"title"`
	TradeArea    string             `json:"trade_area"`
	Price        int64              `json:"price"`
	MainImageURL *string            `json:"main_image_url"`
	TradeStatus  domain.CodeAndName `json:"trade_status"`
	ViewCount    int64              `json:"view_count"`
	CreatedAt    int64              `json:"created_at"`
	ModifiedAt   int64              `json:"modified_at"`
	IsLiked      bool               `json:"is_liked"`
}

type ArticleDetailResponse struct {
	ID           int64              `json:"id"`
	Writer       WriterResponse     `json:"writer"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Category     domain.CodeAndName `json:"category"`
	TradeArea    string             `json:"trade_area"`
	Quantity     int                `json:"quantity"`
	Price        int64              `json:"price"`
	TradeStatus  domain.CodeAndName `json:"trade_status"`
	MainImageURL *string            `json:"main_image_url"`
	ViewCount    int64              `json:"view_count"`
	CreatedAt    int64              `json:"created_at"`
	ModifiedAt   int64              `json:"modified_at"`
	IsLiked      bool               `json:"is_liked"`
}

type ArticleCreateOrUpdateResponse struct {
	ID         int64 `json:"id"`
	CreatedAt  int64 `json:"created_at"`
	ModifiedAt int64 `json:"modified_at"`
}

// ProductImageURLsResponse lists stored image URLs, null-padded to the slot count.
type ProductImageURLsResponse struct {
	ImageURLs []*string `json:"image_urls"`
}

type ImageURLsResponse struct {
	ImageURLs []string `json:"image_urls"`
}

type CodeAndNameInfosResponse struct {
	Categories    []domain.CodeAndName `json:"categories"`
	TradeStatuses []domain.CodeAndName `json:"trade_status"`
}

type TradeStatusResponse struct {
	ArticleID   int64              `json:"article_id"`
	TradeStatus domain.CodeAndName `json:"trade_status"`
}

type LikeToggleResponse struct {
	ArticleID int64 `json:"article_id"`
	IsLiked   bool  `json:"is_liked"`
}

type OfferResponse struct {
	ID         int64 `json:"id"`
	ArticleID  int64 `json:"article_id"`
	OffererID  int64 `json:"offerer_id"`
	Price      int64 `json:"price"`
	IsSelected bool  `json:"is_selected"`
	CreatedAt  int64 `json:"created_at"`
}
