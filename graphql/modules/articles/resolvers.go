package articles

import (
	"context"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
	"github.com/campusnews/campusnews-backend/restapi/modules/auth"
)

// callerCanModerate reads the moderator flag the GraphQL handler put on the
// request context
func callerCanModerate(ctx context.Context) bool {
	moderator, _ := ctx.Value(auth.ModeratorKey).(bool)
	return moderator
}

// ResolveArticles lists articles with optional filters. Non-moderators only
// ever see approved articles, whatever status they ask for.
func ResolveArticles(ctx context.Context, db database.DBConnection, status, category, author string) ([]model.Article, error) {
	if !callerCanModerate(ctx) {
		status = model.StatusApproved
	}

	query := `
		FOR a IN articles
			FILTER @status == "" || a.status == @status
			FILTER @category == "" || a.category == @category
			FILTER @author == "" || a.author_email == @author
			SORT a.created_at DESC
			RETURN a
	`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"status":   status,
			"category": category,
			"author":   model.NormalizeEmail(author),
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	articles := []model.Article{}
	for cursor.HasMore() {
		var article model.Article
		if _, err := cursor.ReadDocument(ctx, &article); err == nil {
			articles = append(articles, article)
		}
	}
	return articles, nil
}

// ResolveArticle fetches a single article by key, hiding unapproved articles
// from non-moderators
func ResolveArticle(ctx context.Context, db database.DBConnection, key string) (interface{}, error) {
	query := `FOR a IN articles FILTER a._key == @key LIMIT 1 RETURN a`
	cursor, err := db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var article model.Article
	if _, err := cursor.ReadDocument(ctx, &article); err != nil {
		return nil, err
	}

	if article.Status != model.StatusApproved && !callerCanModerate(ctx) {
		return nil, nil
	}
	return article, nil
}
