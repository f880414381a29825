// Package dashboard defines the GraphQL queries for the admin dashboard.
package dashboard

import (
	"github.com/campusnews/campusnews-backend/database"
	"github.com/graphql-go/graphql"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(db database.DBConnection) graphql.Fields {
	return graphql.Fields{
		"dashboard": &graphql.Field{
			Type: DashboardOverviewType,
			Args: graphql.FieldConfigArgument{
				"recent": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				limit := p.Args["recent"].(int)
				return ResolveOverview(p.Context, db, limit)
			},
		},
	}
}
