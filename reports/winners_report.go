// backend/reports/winners_report.go
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/adtrack/backend/models"
	"github.com/jszwec/csvutil"
)

// WinnerRow is one line of the winners report: a veteran ad that has run long
// enough to imply the advertiser finds it profitable.
type WinnerRow struct {
	PageName    string `csv:"page_name"`
	Headline    string `csv:"headline"`
	AdType      string `csv:"ad_type"`
	DaysRunning int    `csv:"days_running"`
	FirstSeen   string `csv:"first_seen"`
	AiCategory  string `csv:"ai_category"`
	AiHook      string `csv:"ai_hook"`
	ImageURL    string `csv:"image_url"`
}

// WriteWinnersCSV encodes the veteran ads as a CSV report.
func WriteWinnersCSV(w io.Writer, ads []models.Ad) error {
	rows := make([]WinnerRow, 0, len(ads))
	for _, ad := range ads {
		row := WinnerRow{
			PageName:    ad.PageName,
			Headline:    ad.Headline,
			AdType:      ad.AdType,
			DaysRunning: ad.DaysRunning,
			FirstSeen:   ad.FirstSeen.Format(time.DateOnly),
			ImageURL:    ad.ImageURL,
		}
		if ad.AiCategory != nil {
			row.AiCategory = *ad.AiCategory
		}
		if ad.AiHook != nil {
			row.AiHook = *ad.AiHook
		}
		rows = append(rows, row)
	}

	out, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode winners report: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write winners report: %w", err)
	}
	return nil
}
