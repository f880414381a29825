// Package articles defines the GraphQL queries for article browsing.
package articles

import (
	"github.com/campusnews/campusnews-backend/database"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the article queries to be mounted in the root schema.
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		"articles": &graphql.Field{
			Type: graphql.NewList(ArticleType),
			Args: graphql.FieldConfigArgument{
				"status":   &graphql.ArgumentConfig{Type: StatusType},
				"category": &graphql.ArgumentConfig{Type: graphql.String},
				"author":   &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				status, _ := p.Args["status"].(string)
				category, _ := p.Args["category"].(string)
				author, _ := p.Args["author"].(string)
				return ResolveArticles(p.Context, db, status, category, author)
			},
		},
		"article": &graphql.Field{
			Type: ArticleType,
			Args: graphql.FieldConfigArgument{
				"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				key := p.Args["key"].(string)
				return ResolveArticle(p.Context, db, key)
			},
		},
	}
}
