package articles_test

import (
	"testing"

	events "github.com/campusnews/campusnews-backend/events/modules/articles"
	"github.com/stretchr/testify/require"
)

func TestNewArticleProducerFromEnvDisabled(t *testing.T) {
	require.Nil(t, events.NewArticleProducerFromEnv(""))
}

func TestNewArticleProducerFromEnvConfigured(t *testing.T) {
	producer := events.NewArticleProducerFromEnv("broker1:9092,broker2:9092")
	require.NotNil(t, producer)
	require.Equal(t, events.TopicArticleApproved, producer.Writer.Topic)
	defer producer.Close()
}
