// Package dashboard defines the GraphQL types for the admin dashboard.
package dashboard

import (
	"github.com/campusnews/campusnews-backend/graphql/modules/articles"
	"github.com/graphql-go/graphql"
)

// StatusCountType is one status bucket in the overview
var StatusCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StatusCount",
	Fields: graphql.Fields{
		"status": &graphql.Field{Type: graphql.String},
		"total":  &graphql.Field{Type: graphql.Int},
	},
})

// CategoryCountType is one category bucket in the overview
var CategoryCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CategoryCount",
	Fields: graphql.Fields{
		"category": &graphql.Field{Type: graphql.String},
		"total":    &graphql.Field{Type: graphql.Int},
	},
})

// DashboardOverviewType aggregates the moderation workload at a glance
var DashboardOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardOverview",
	Fields: graphql.Fields{
		"total_articles": &graphql.Field{Type: graphql.Int},
		"total_users":    &graphql.Field{Type: graphql.Int},
		"by_status":      &graphql.Field{Type: graphql.NewList(StatusCountType)},
		"by_category":    &graphql.Field{Type: graphql.NewList(CategoryCountType)},
		"recent":         &graphql.Field{Type: graphql.NewList(articles.ArticleType)},
	},
})
