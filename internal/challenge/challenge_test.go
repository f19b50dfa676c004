package challenge

import (
	"testing"

	"github.com/arnold/habits-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredCompletions(t *testing.T) {
	cases := []struct {
		perWeek    int
		start, end string
		want       int
	}{
		{5, "2026-01-01", "2026-01-07", 5},
		{5, "2026-01-01", "2026-01-08", 10},
		{3, "2026-01-01", "2026-01-01", 3},
		{2, "2026-01-01", "2026-01-28", 8},
		{4, "2026-01-10", "2026-01-01", 0},
	}
	for _, tc := range cases {
		got, err := RequiredCompletions(tc.perWeek, tc.start, tc.end)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%d/week %s..%s", tc.perWeek, tc.start, tc.end)
	}
}

func TestRequiredCompletions_InvalidDate(t *testing.T) {
	_, err := RequiredCompletions(3, "2026-13-01", "2026-12-31")
	assert.Error(t, err)
}

func TestComputeProgress(t *testing.T) {
	p, err := ComputeProgress(2, 5, "2026-01-01", "2026-01-07")
	require.NoError(t, err)
	assert.Equal(t, Progress{Completions: 2, Required: 5, Percentage: 40}, p)

	p, err = ComputeProgress(9, 5, "2026-01-01", "2026-01-07")
	require.NoError(t, err)
	assert.Equal(t, 100, p.Percentage)

	p, err = ComputeProgress(1, 3, "2026-01-01", "2026-01-14")
	require.NoError(t, err)
	assert.Equal(t, 17, p.Percentage)
}

func TestComputeProgress_ZeroRequired(t *testing.T) {
	p, err := ComputeProgress(4, 0, "2026-01-01", "2026-01-07")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Required)
	assert.Equal(t, 0, p.Percentage)
}

func TestEvaluate(t *testing.T) {
	for _, today := range []string{"2025-12-01", "2026-01-01", "2026-01-07"} {
		status, err := Evaluate(0, 5, "2026-01-01", "2026-01-07", today)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantActive, status, "today %s", today)

		status, err = Evaluate(50, 5, "2026-01-01", "2026-01-07", today)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipantActive, status, "today %s", today)
	}

	status, err := Evaluate(5, 5, "2026-01-01", "2026-01-07", "2026-01-08")
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantCompleted, status)

	status, err = Evaluate(4, 5, "2026-01-01", "2026-01-07", "2026-01-08")
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantFailed, status)
}

func TestWindowStatus(t *testing.T) {
	assert.Equal(t, StatusUpcoming, WindowStatus("2026-01-01", "2026-01-07", "2025-12-31"))
	assert.Equal(t, StatusActive, WindowStatus("2026-01-01", "2026-01-07", "2026-01-01"))
	assert.Equal(t, StatusActive, WindowStatus("2026-01-01", "2026-01-07", "2026-01-07"))
	assert.Equal(t, StatusEnded, WindowStatus("2026-01-01", "2026-01-07", "2026-01-08"))
}
