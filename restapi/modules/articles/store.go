// Package articles implements article submission, browsing and moderation.
package articles

import (
	"context"
	"errors"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
)

const queryTimeout = 8 * time.Second

// ErrArticleNotFound is returned when no article matches the lookup
var ErrArticleNotFound = errors.New("article not found")

// IsTimeout reports whether err was caused by a query deadline
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// articleFilter narrows listArticles. Empty fields match everything.
type articleFilter struct {
	Status   string
	Category string
	Author   string
}

func listArticles(ctx context.Context, db database.DBConnection, filter articleFilter) ([]*model.Article, error) {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		FOR a IN articles
			FILTER @status == "" || a.status == @status
			FILTER @category == "" || a.category == @category
			FILTER @author == "" || a.author_email == @author
			SORT a.created_at DESC
			RETURN a
	`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"status":   filter.Status,
			"category": filter.Category,
			"author":   model.NormalizeEmail(filter.Author),
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var out []*model.Article
	for cursor.HasMore() {
		var article model.Article
		if _, err := cursor.ReadDocument(qctx, &article); err == nil {
			out = append(out, &article)
		}
	}
	return out, nil
}

func getArticleByKey(ctx context.Context, db database.DBConnection, key string) (*model.Article, error) {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `FOR a IN articles FILTER a._key == @key LIMIT 1 RETURN a`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, ErrArticleNotFound
	}

	var article model.Article
	if _, err := cursor.ReadDocument(qctx, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func createArticle(ctx context.Context, db database.DBConnection, article *model.Article) error {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	meta, err := db.Collections["articles"].CreateDocument(qctx, article)
	if err != nil {
		return err
	}
	article.Key = meta.Key
	return nil
}

func updateArticle(ctx context.Context, db database.DBConnection, article *model.Article) error {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		FOR a IN articles
			FILTER a._key == @key
			UPDATE a WITH {
				title: @title,
				body: @body,
				category: @category,
				image_url: @image_url,
				status: @status,
				updated_at: @updated_at
			} IN articles
	`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"key":        article.Key,
			"title":      article.Title,
			"body":       article.Body,
			"category":   article.Category,
			"image_url":  article.ImageURL,
			"status":     article.Status,
			"updated_at": article.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	cursor.Close()
	return nil
}

func deleteArticle(ctx context.Context, db database.DBConnection, key string) error {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		FOR a IN articles
			FILTER a._key == @key
			REMOVE a IN articles
			COLLECT WITH COUNT INTO removed
			RETURN removed
	`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	if err != nil {
		return err
	}
	defer cursor.Close()

	count := 0
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(qctx, &count); err != nil {
			return err
		}
	}
	if count == 0 {
		return ErrArticleNotFound
	}
	return nil
}
