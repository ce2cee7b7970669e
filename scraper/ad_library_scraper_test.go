// backend/scraper/ad_library_scraper_test.go
package scraper

import (
	"strings"
	"testing"

	"github.com/adtrack/backend/config"
	"github.com/adtrack/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSelectors(t *testing.T, maxAds int) {
	t.Helper()
	config.AppConfig.AdLibrary = config.AdLibraryConfig{
		SearchURLBase:    "https://example.com/ads/library/?country=US",
		MaxAdsPerPass:    maxAds,
		CardSelector:     ".ad-card",
		HeadlineSelector: ".headline",
		BodySelector:     ".body",
		ImageSelector:    "img.creative",
		VideoSelector:    "video",
	}
}

const resultsPage = `<html><body>
<div class="ad-card" data-ad-id="lib_9001">
  <div class="headline">Run Far</div>
  <div class="body">The most comfortable shoes you'll ever wear.</div>
  <img class="creative" src="https://cdn.example.com/shoe.jpg"/>
</div>
<div class="ad-card">
  <div class="headline">Transform Your Workout</div>
  <div class="body">Thirty days to a new you.</div>
  <video src="https://cdn.example.com/workout.mp4"></video>
</div>
<div class="ad-card">
  <!-- no usable content: skipped -->
</div>
<div class="ad-card">
  <div class="headline">Text Only Pitch</div>
  <div class="body">No media at all.</div>
</div>
</body></html>`

func TestParseAdCards(t *testing.T) {
	setTestSelectors(t, 20)

	candidates, err := ParseAdCards(strings.NewReader(resultsPage), 7)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	first := candidates[0]
	assert.Equal(t, "lib_9001", first.AdID, "platform ad id should win over the content hash")
	assert.Equal(t, int64(7), first.CompetitorID)
	assert.Equal(t, models.AdTypeStatic, first.AdType)
	assert.Equal(t, "Run Far", first.Headline)
	assert.Equal(t, "https://cdn.example.com/shoe.jpg", first.ImageURL)

	second := candidates[1]
	assert.Equal(t, models.AdTypeVideo, second.AdType)
	assert.Equal(t, "https://cdn.example.com/workout.mp4", second.VideoURL)
	assert.True(t, strings.HasPrefix(second.AdID, "ad_"), "cards without a platform id get a derived one")

	third := candidates[2]
	assert.Equal(t, models.AdTypeTextOnly, third.AdType)

	for _, c := range candidates {
		assert.NoError(t, c.Validate())
	}
}

func TestParseAdCardsRespectsCap(t *testing.T) {
	setTestSelectors(t, 2)

	candidates, err := ParseAdCards(strings.NewReader(resultsPage), 7)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestStableAdIDDeterministic(t *testing.T) {
	a := StableAdID(7, "Run Far", "body text", "https://cdn.example.com/shoe.jpg")
	b := StableAdID(7, "Run Far", "body text", "https://cdn.example.com/shoe.jpg")
	assert.Equal(t, a, b, "same creative must hash to the same ad id across passes")

	c := StableAdID(8, "Run Far", "body text", "https://cdn.example.com/shoe.jpg")
	assert.NotEqual(t, a, c, "different competitor must not collide")

	d := StableAdID(7, "Run Near", "body text", "https://cdn.example.com/shoe.jpg")
	assert.NotEqual(t, a, d)
}

func TestSearchURLEscapesName(t *testing.T) {
	setTestSelectors(t, 20)

	got := SearchURL("Warby Parker")
	assert.Equal(t, "https://example.com/ads/library/?country=US&q=Warby+Parker", got)
}
