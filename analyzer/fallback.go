// backend/analyzer/fallback.go
package analyzer

import "github.com/adtrack/backend/models"

// FallbackClassification is the deterministic local guess applied when the
// external classifier fails. It never errors: every ad ends a pass with some
// classification rather than staying perpetually unclassified. Category falls
// back to the observed ad type, hook to "curiosity" when a headline exists.
func FallbackClassification(ad models.Ad) Classification {
	category := ad.AdType
	if category == "" {
		category = "unknown"
	}
	hook := "unknown"
	if ad.Headline != "" {
		hook = "curiosity"
	}
	return Classification{Category: category, Hook: hook}
}
