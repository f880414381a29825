// Package articles handles Kafka event production for article moderation events.
package articles

import (
	"time"

	"github.com/campusnews/campusnews-backend/model"
)

// TopicArticleApproved is the Kafka topic for approval events
const TopicArticleApproved = "article.approved"

// ArticleApprovedEvent is emitted when a moderator approves an article
type ArticleApprovedEvent struct {
	EventType     string        `json:"event_type"`
	EventID       string        `json:"event_id"`
	EventTime     time.Time     `json:"event_time"`
	SchemaVersion string        `json:"schema_version"`
	Article       model.Article `json:"article"`
	ApprovedBy    string        `json:"approved_by"`
}
