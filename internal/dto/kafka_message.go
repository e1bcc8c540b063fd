package dto

const (
	EventArticleCreated            = "article_created"
	EventArticleUpdated            = "article_updated"
	EventArticleDeleted            = "article_deleted"
	EventArticleTradeStatusUpdated = "article_trade_status_updated"
	EventArticleImagesDiscarded    = "article_images_discarded"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type ArticleEvent struct {
	ArticleID       int64 `json:"article_id"`
	WriterID        int64 `json:"writer_id"`
	TradeStatusCode int   `json:"trade_status_code"`
}

type ImagesDiscardedEvent struct {
	ArticleID int64    `json:"article_id"`
	ImageURLs []string `json:"image_urls"`
}
