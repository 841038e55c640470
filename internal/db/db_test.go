package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-extractor/internal/types"
)

func TestRunStatusConstants(t *testing.T) {
	statuses := []string{StatusRunning, StatusCompleted, StatusFailed}
	for _, status := range statuses {
		assert.NotEmpty(t, status, "status constant should not be empty")
	}
}

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{StepCaptureText, StepCaptureHTML, StepClassifiedLines, StepProfile}
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		SourceURL: "https://example.com/in/jane",
		Locale:    "en",
		Status:    StatusRunning,
	}

	assert.Equal(t, "https://example.com/in/jane", run.SourceURL)
	assert.Equal(t, "en", run.Locale)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)
}

// setupTestDB connects to the database named by DATABASE_URL, skipping the
// test when the environment does not provide one.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Connect(ctx, databaseURL)
	require.NoError(t, err)
	return db
}

func TestIntegration_RunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	runID, err := db.CreateRun(ctx, "https://example.com/in/jane", "en", 1234)
	require.NoError(t, err)
	defer db.DeleteRun(ctx, runID)

	run, err := db.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Equal(t, 1234, run.TextLength)

	require.NoError(t, db.CompleteRun(ctx, runID, StatusCompleted))

	run, err = db.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, run.Status)
	assert.NotNil(t, run.CompletedAt)

	// Missing run returns nil, nil
	missing, err := db.GetRun(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_ProfileRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	runID, err := db.CreateRun(ctx, "", "en", 0)
	require.NoError(t, err)
	defer db.DeleteRun(ctx, runID)

	profile := types.NewProfile()
	profile.Personal.FullName = "Jane Smith"
	profile.Experience = append(profile.Experience, types.CandidateRecord{
		Title: "Senior Software Engineer",
		Org:   "Acme Corp",
	})

	require.NoError(t, db.SaveProfile(ctx, runID, profile))

	got, err := db.GetProfile(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Smith", got.Personal.FullName)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Acme Corp", got.Experience[0].Org)

	// Missing profile returns nil, nil
	gone, err := db.GetProfile(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestIntegration_ListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	marker := "list-test-" + uuid.New().String()
	runID, err := db.CreateRun(ctx, "https://example.com/"+marker, "ja", 10)
	require.NoError(t, err)
	defer db.DeleteRun(ctx, runID)

	runs, err := db.ListRuns(ctx, RunFilters{SourceURL: marker})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)

	runs, err = db.ListRuns(ctx, RunFilters{SourceURL: marker, Status: StatusFailed})
	require.NoError(t, err)
	assert.Empty(t, runs)
}
