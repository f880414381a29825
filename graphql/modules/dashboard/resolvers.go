package dashboard

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
)

// StatusCount is one status bucket
type StatusCount struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// CategoryCount is one category bucket
type CategoryCount struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// Overview aggregates the moderation workload
type Overview struct {
	TotalArticles int             `json:"total_articles"`
	TotalUsers    int             `json:"total_users"`
	ByStatus      []StatusCount   `json:"by_status"`
	ByCategory    []CategoryCount `json:"by_category"`
	Recent        []model.Article `json:"recent"`
}

// ResolveOverview builds the dashboard overview. Moderators only.
func ResolveOverview(ctx context.Context, db database.DBConnection, recentLimit int) (*Overview, error) {
	if moderator, _ := ctx.Value(auth.ModeratorKey).(bool); !moderator {
		return nil, fmt.Errorf("admin access required")
	}

	overview := &Overview{
		ByStatus:   []StatusCount{},
		ByCategory: []CategoryCount{},
		Recent:     []model.Article{},
	}

	statusQuery := `
		FOR a IN articles
			COLLECT status = a.status WITH COUNT INTO total
			RETURN { status, total }
	`
	cursor, err := db.Database.Query(ctx, statusQuery, nil)
	if err != nil {
		return nil, err
	}
	for cursor.HasMore() {
		var row StatusCount
		if _, err := cursor.ReadDocument(ctx, &row); err == nil {
			overview.ByStatus = append(overview.ByStatus, row)
			overview.TotalArticles += row.Total
		}
	}
	cursor.Close()

	categoryQuery := `
		FOR a IN articles
			COLLECT category = a.category WITH COUNT INTO total
			SORT total DESC
			RETURN { category, total }
	`
	cursor, err = db.Database.Query(ctx, categoryQuery, nil)
	if err != nil {
		return nil, err
	}
	for cursor.HasMore() {
		var row CategoryCount
		if _, err := cursor.ReadDocument(ctx, &row); err == nil {
			overview.ByCategory = append(overview.ByCategory, row)
		}
	}
	cursor.Close()

	userQuery := `
		FOR u IN users
			COLLECT WITH COUNT INTO total
			RETURN total
	`
	cursor, err = db.Database.Query(ctx, userQuery, nil)
	if err != nil {
		return nil, err
	}
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(ctx, &overview.TotalUsers); err != nil {
			cursor.Close()
			return nil, err
		}
	}
	cursor.Close()

	recentQuery := `
		FOR a IN articles
			SORT a.created_at DESC
			LIMIT @limit
			RETURN a
	`
	cursor, err = db.Database.Query(ctx, recentQuery, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"limit": recentLimit},
	})
	if err != nil {
		return nil, err
	}
	for cursor.HasMore() {
		var article model.Article
		if _, err := cursor.ReadDocument(ctx, &article); err == nil {
			overview.Recent = append(overview.Recent, article)
		}
	}
	cursor.Close()

	return overview, nil
}
