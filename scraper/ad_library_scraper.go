// backend/scraper/ad_library_scraper.go
package scraper

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/adtrack/backend/config"
	"github.com/adtrack/backend/models"
	"github.com/adtrack/backend/utils"
)

const (
	maxHeadlineLen = 500
	maxBodyLen     = 1000
)

// FetchCompetitorAds runs one acquisition pass for a single competitor: it
// fetches the ad library search page and extracts candidate records from the
// result cards. Candidates still need Validate() before they reach the store.
func FetchCompetitorAds(competitorName string, competitorID int64) ([]models.AdCandidate, error) {
	pageURL := SearchURL(competitorName)
	log.Printf("Scraper: Fetching ads for %q from %s\n", competitorName, pageURL)

	client := http.Client{Timeout: config.AppConfig.AdLibrary.RequestTimeout}
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pageURL, err)
	}
	if ua := config.AppConfig.AdLibrary.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	candidates, err := ParseAdCards(res.Body, competitorID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ad cards for %q: %w", competitorName, err)
	}

	log.Printf("Scraper: Extracted %d ad candidates for %q.\n", len(candidates), competitorName)
	return candidates, nil
}

// SearchURL builds the ad library search URL for a competitor page name.
func SearchURL(competitorName string) string {
	return config.AppConfig.AdLibrary.SearchURLBase + "&q=" + url.QueryEscape(competitorName)
}

// ParseAdCards extracts ad candidates from an ad library results page.
// Cards with no usable content (no headline, body or image) are skipped, and
// extraction is capped at max_ads_per_pass. Selectors come from config since
// the page markup is not ours and shifts under us.
func ParseAdCards(body io.Reader, competitorID int64) ([]models.AdCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	sel := config.AppConfig.AdLibrary
	maxAds := sel.MaxAdsPerPass

	var candidates []models.AdCandidate
	doc.Find(sel.CardSelector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		if len(candidates) >= maxAds {
			return false
		}

		headline := utils.Truncate(card.Find(sel.HeadlineSelector).First().Text(), maxHeadlineLen)
		bodyText := utils.Truncate(card.Find(sel.BodySelector).First().Text(), maxBodyLen)

		imageURL, _ := card.Find(sel.ImageSelector).First().Attr("src")
		videoURL, _ := card.Find(sel.VideoSelector).First().Attr("src")
		if videoURL == "" {
			videoURL, _ = card.Find(sel.VideoSelector + " source").First().Attr("src")
		}

		if headline == "" && bodyText == "" && imageURL == "" {
			return true
		}

		adType := inferAdType(card, videoURL)

		// Prefer the platform's own ad identifier when the card exposes one;
		// otherwise derive a stable key from the creative content so repeated
		// passes dedup onto the same record.
		adID, ok := card.Attr("data-ad-id")
		if !ok || strings.TrimSpace(adID) == "" {
			adID = StableAdID(competitorID, headline, bodyText, imageURL)
		}

		candidates = append(candidates, models.AdCandidate{
			AdID:         adID,
			CompetitorID: competitorID,
			AdType:       adType,
			Headline:     headline,
			BodyText:     bodyText,
			ImageURL:     imageURL,
			VideoURL:     videoURL,
		})
		return true
	})

	return candidates, nil
}

// StableAdID derives a deterministic ad identifier from creative content.
// The same creative observed in later passes hashes to the same key.
func StableAdID(competitorID int64, headline, bodyText, imageURL string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\x00%s\x00%s\x00%s", competitorID, headline, bodyText, imageURL)
	return "ad_" + hex.EncodeToString(h.Sum(nil))[:32]
}

func inferAdType(card *goquery.Selection, videoURL string) string {
	switch {
	case videoURL != "":
		return models.AdTypeVideo
	case card.Find(`[aria-label*="carousel"]`).Length() > 0:
		return models.AdTypeCarousel
	case card.Find("img").Length() == 0:
		return models.AdTypeTextOnly
	default:
		return models.AdTypeStatic
	}
}
