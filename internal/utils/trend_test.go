package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrendScoreZeroWithoutActivity(t *testing.T) {
	score := CalculateTrendScore(time.Now(), 0, 0, 0)
	assert.Equal(t, 0.0, score)
}

func TestTrendScoreDecaysWithAge(t *testing.T) {
	fresh := CalculateTrendScore(time.Now().Add(-1*time.Hour), 10, 5, 100)
	old := CalculateTrendScore(time.Now().Add(-72*time.Hour), 10, 5, 100)
	assert.Greater(t, fresh, old)
}

func TestTrendScoreFavoritesWeighMore(t *testing.T) {
	createdAt := time.Now().Add(-2 * time.Hour)
	liked := CalculateTrendScore(createdAt, 10, 0, 0)
	favorited := CalculateTrendScore(createdAt, 0, 10, 0)
	assert.Greater(t, favorited, liked)
}
