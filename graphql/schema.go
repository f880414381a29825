// Package graphql assembles the root schema from the per-module query fields.
package graphql

import (
	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/graphql/modules/articles"
	"github.com/campusnews/campusnews-backend/graphql/modules/dashboard"
	"github.com/graphql-go/graphql"
)

var db database.DBConnection

// InitDB stores the database connection used by all resolvers
func InitDB(conn database.DBConnection) {
	db = conn
}

// CreateSchema builds the root query schema
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}

	for name, field := range articles.GetQueryFields(db) {
		fields[name] = field
	}
	for name, field := range dashboard.GetQueryFields(db) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
