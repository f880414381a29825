// Package articles defines the GraphQL types for article browsing.
package articles

import (
	"github.com/campusnews/campusnews-backend/model"
	"github.com/graphql-go/graphql"
)

// ArticleType represents a news article
var ArticleType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Article",
	Fields: graphql.Fields{
		"key": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if article, ok := p.Source.(model.Article); ok {
					return article.Key, nil
				}
				return nil, nil
			},
		},
		"title":        &graphql.Field{Type: graphql.String},
		"body":         &graphql.Field{Type: graphql.String},
		"category":     &graphql.Field{Type: graphql.String},
		"image_url":    &graphql.Field{Type: graphql.String},
		"author_email": &graphql.Field{Type: graphql.String},
		"author_name":  &graphql.Field{Type: graphql.String},
		"status":       &graphql.Field{Type: graphql.String},
		"created_at":   &graphql.Field{Type: graphql.String},
		"updated_at":   &graphql.Field{Type: graphql.String},
	},
})

// StatusType restricts status arguments to the known values
var StatusType = graphql.NewEnum(graphql.EnumConfig{
	Name: "ArticleStatus",
	Values: graphql.EnumValueConfigMap{
		"PENDING":  &graphql.EnumValueConfig{Value: "pending"},
		"APPROVED": &graphql.EnumValueConfig{Value: "approved"},
		"REJECTED": &graphql.EnumValueConfig{Value: "rejected"},
	},
})
