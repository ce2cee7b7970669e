// backend/reports/winners_report_test.go
package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/adtrack/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWinnersCSV(t *testing.T) {
	category := "video"
	hook := "curiosity"
	ads := []models.Ad{
		{
			PageName:    "Nike",
			Headline:    "Run Far",
			AdType:      models.AdTypeVideo,
			DaysRunning: 45,
			FirstSeen:   time.Date(2026, 7, 17, 10, 30, 0, 0, time.UTC),
			ImageURL:    "https://cdn.example.com/shoe.jpg",
			AiCategory:  &category,
			AiHook:      &hook,
		},
		{
			PageName:    "Adidas",
			Headline:    "Three, Stripes, Go",
			AdType:      models.AdTypeStatic,
			DaysRunning: 31,
			FirstSeen:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWinnersCSV(&buf, ads))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one line per ad")
	assert.Equal(t, "page_name,headline,ad_type,days_running,first_seen,ai_category,ai_hook,image_url", lines[0])
	assert.Contains(t, lines[1], "Nike,Run Far,video,45,2026-07-17,video,curiosity")
	assert.Contains(t, lines[2], `"Three, Stripes, Go"`, "commas in headlines must be quoted")
	assert.Contains(t, lines[2], ",,,", "unclassified ads leave the AI columns empty")
}

func TestWriteWinnersCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWinnersCSV(&buf, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "an empty report still carries the header")
	assert.Contains(t, lines[0], "page_name")
}
