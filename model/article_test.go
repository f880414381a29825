package model_test

import (
	"testing"

	"github.com/campusnews/campusnews-backend/model"
	"github.com/stretchr/testify/require"
)

func TestNewArticleStartsPending(t *testing.T) {
	a := model.NewArticle("Title", "Body text", "sports", "Author@Campus.EDU", "Author")
	require.Equal(t, model.StatusPending, a.Status)
	require.Equal(t, "author@campus.edu", a.AuthorEmail)
	require.False(t, a.CreatedAt.IsZero())
}

func TestIsValidStatus(t *testing.T) {
	require.True(t, model.IsValidStatus(model.StatusPending))
	require.True(t, model.IsValidStatus(model.StatusApproved))
	require.True(t, model.IsValidStatus(model.StatusRejected))
	require.False(t, model.IsValidStatus("published"))
	require.False(t, model.IsValidStatus(""))
}
