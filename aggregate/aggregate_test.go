package aggregate

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwave/formwave/model"
)

var testQuestions = []model.Question{
	{ID: 1, Title: "How was the service?", Type: model.QuestionText},
	{ID: 2, Title: "Favorite colors", Type: model.QuestionMultipleChoice,
		Options: []string{"Red", "Blue", "Green"}},
}

func TestSummarizeTextAnswers(t *testing.T) {
	answers := []model.Answer{
		{SubmissionID: 1, QuestionID: 1, Value: "Great service"},
		{SubmissionID: 2, QuestionID: 1, Value: "Great service"},
		{SubmissionID: 3, QuestionID: 1, Value: "Slow"},
	}

	summaries := Summarize(testQuestions, answers)

	require.Len(t, summaries, 2)
	s := summaries[0]
	assert.Equal(t, int64(1), s.QuestionID)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, map[string]int{"Great service": 2, "Slow": 1}, s.Answers)
	assert.Nil(t, s.Options)
}

func TestSummarizeMultipleChoice(t *testing.T) {
	answers := []model.Answer{
		{SubmissionID: 1, QuestionID: 2, Value: `["Red","Blue"]`},
		{SubmissionID: 2, QuestionID: 2, Value: `["Red"]`},
	}

	summaries := Summarize(testQuestions, answers)

	s := summaries[1]
	// every selected option is tallied, but each answer counts once
	assert.Equal(t, map[string]int{"Red": 2, "Blue": 1}, s.Answers)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, []string{"Red", "Blue", "Green"}, s.Options)
}

func TestSummarizeSkipsMalformedValues(t *testing.T) {
	answers := []model.Answer{
		{SubmissionID: 1, QuestionID: 2, Value: `{not json`},
		{SubmissionID: 2, QuestionID: 2, Value: `["Green"]`},
	}

	summaries := Summarize(testQuestions, answers)

	s := summaries[1]
	assert.Equal(t, map[string]int{"Green": 1}, s.Answers)
	assert.Equal(t, 1, s.Total, "malformed answer must not count toward the total")
}

func TestSummarizeSkipsNullValues(t *testing.T) {
	answers := []model.Answer{
		{SubmissionID: 1, QuestionID: 2, Value: `null`},
		{SubmissionID: 2, QuestionID: 2, Value: `["Red"]`},
	}

	summaries := Summarize(testQuestions, answers)

	s := summaries[1]
	assert.Equal(t, map[string]int{"Red": 1}, s.Answers)
	assert.Equal(t, 1, s.Total, "non-array value must not count toward the total")
}

func TestSummarizeNoAnswers(t *testing.T) {
	summaries := Summarize(testQuestions, nil)

	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Zero(t, s.Total)
		assert.Empty(t, s.Answers)
		assert.NotNil(t, s.Answers)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 75, Percent(3, 4))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(5, 5))
	assert.Equal(t, 0, Percent(0, 5))
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(3, 0))
}

func TestTranscripts(t *testing.T) {
	submittedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	submissions := []model.Submission{
		{ID: 100, FormID: 7, SubmittedAt: submittedAt},
		{ID: 101, FormID: 7, SubmittedAt: submittedAt.Add(time.Hour)},
	}
	answers := []model.Answer{
		{SubmissionID: 100, QuestionID: 1, Value: "Great service"},
		{SubmissionID: 100, QuestionID: 2, Value: `["Red","Green"]`},
		{SubmissionID: 101, QuestionID: 2, Value: `["Blue"]`},
	}

	got := Transcripts(testQuestions, submissions, answers)

	want := []Transcript{
		{
			SubmissionID: 100,
			SubmittedAt:  submittedAt,
			Entries: []TranscriptEntry{
				{QuestionID: 1, Title: "How was the service?", Value: "Great service", Answered: true},
				{QuestionID: 2, Title: "Favorite colors", Value: "Red, Green", Answered: true},
			},
		},
		{
			SubmissionID: 101,
			SubmittedAt:  submittedAt.Add(time.Hour),
			Entries: []TranscriptEntry{
				{QuestionID: 1, Title: "How was the service?", Value: NoAnswer},
				{QuestionID: 2, Title: "Favorite colors", Value: "Blue", Answered: true},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transcripts mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscriptsMalformedFallsBackToRawValue(t *testing.T) {
	submissions := []model.Submission{{ID: 100, FormID: 7}}
	answers := []model.Answer{
		{SubmissionID: 100, QuestionID: 2, Value: `{not json`},
	}

	got := Transcripts(testQuestions, submissions, answers)

	require.Len(t, got, 1)
	entry := got[0].Entries[1]
	assert.True(t, entry.Answered)
	assert.Equal(t, `{not json`, entry.Value)
}
