// backend/services/analysis_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/adtrack/backend/analyzer"
	"github.com/adtrack/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	result *analyzer.Classification
	err    error
	calls  int
}

func (f *fakeClassifier) ClassifyAd(ctx context.Context, ad models.Ad) (*analyzer.Classification, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func setTestClassifier(t *testing.T, fake *fakeClassifier) {
	t.Helper()
	prev, prevDelay := Classifier, AnalysisDelay
	Classifier = fake
	AnalysisDelay = 0
	t.Cleanup(func() {
		Classifier = prev
		AnalysisDelay = prevDelay
	})
}

func pendingAdRows(t0 time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows(adRowColumns)
	rows.AddRow(1, "a1", 1, "video", "Run Far", "body", "https://img", "", t0, t0, true, 5, nil, nil, nil)
	return rows
}

func TestAnalyzeAllAds(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	fake := &fakeClassifier{result: &analyzer.Classification{Category: "ugc_style", Hook: "social_proof"}}
	setTestClassifier(t, fake)

	mock := setupMockDB(t)
	mock.ExpectQuery("FROM ads").WillReturnRows(pendingAdRows(t0))
	mock.ExpectExec("UPDATE ads").
		WithArgs("ugc_style", "social_proof", models.AiSourceOpenAI, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	analyzed, err := AnalyzeAllAds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, analyzed)
	assert.Equal(t, 1, fake.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyzeAllAdsClassifierFailureUsesFallback(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	fake := &fakeClassifier{err: errors.New("rate limit")}
	setTestClassifier(t, fake)

	mock := setupMockDB(t)
	mock.ExpectQuery("FROM ads").WillReturnRows(pendingAdRows(t0))
	// Fallback: ad type as category, curiosity because a headline exists.
	mock.ExpectExec("UPDATE ads").
		WithArgs("video", "curiosity", models.AiSourceFallback, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	analyzed, err := AnalyzeAllAds(context.Background())
	require.NoError(t, err, "a failed classification must not fail the pass")
	assert.Equal(t, 1, analyzed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyzeAllAdsSkipsEnrichedAds(t *testing.T) {
	fake := &fakeClassifier{result: &analyzer.Classification{Category: "video", Hook: "urgency"}}
	setTestClassifier(t, fake)

	mock := setupMockDB(t)
	mock.ExpectQuery("FROM ads").WillReturnRows(sqlmock.NewRows(adRowColumns))

	analyzed, err := AnalyzeAllAds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, analyzed)
	assert.Zero(t, fake.calls, "enriched ads must never be re-sent to the classifier")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyzeAllAdsStoreFailureAbortsPass(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	fake := &fakeClassifier{result: &analyzer.Classification{Category: "video", Hook: "urgency"}}
	setTestClassifier(t, fake)

	mock := setupMockDB(t)
	mock.ExpectQuery("FROM ads").WillReturnRows(pendingAdRows(t0))
	mock.ExpectExec("UPDATE ads").
		WillReturnError(errors.New("connection lost"))

	_, err := AnalyzeAllAds(context.Background())
	assert.Error(t, err)
}

func TestAnalyzeAllAdsWithoutClassifier(t *testing.T) {
	prev := Classifier
	Classifier = nil
	t.Cleanup(func() { Classifier = prev })

	_, err := AnalyzeAllAds(context.Background())
	assert.Error(t, err)
}
