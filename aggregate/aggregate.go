// Package aggregate turns a form's raw answers into per-question
// summaries and per-submission transcripts.
package aggregate

import (
	"math"
	"strings"
	"time"

	"github.com/formwave/formwave/log"
	"github.com/formwave/formwave/model"
)

// QuestionSummary is the derived tally for one question. Answers maps
// each seen value (or selected option) to its occurrence count; Total
// counts answers, not selections, so a multi-select answer increments
// it once however many options it picked.
type QuestionSummary struct {
	QuestionID int64              `json:"questionId"`
	Title      string             `json:"title"`
	Type       model.QuestionType `json:"type"`
	Options    []string           `json:"options,omitempty"`
	Answers    map[string]int     `json:"answers"`
	Total      int                `json:"total"`
}

// Summarize computes one summary per question. Stored values that fail
// to decode are logged and skipped: a malformed row degrades that one
// answer, never the whole report.
func Summarize(questions []model.Question, answers []model.Answer) []QuestionSummary {
	byQuestion := make(map[int64][]model.Answer, len(questions))
	for _, a := range answers {
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}

	summaries := make([]QuestionSummary, len(questions))
	for i, q := range questions {
		s := QuestionSummary{
			QuestionID: q.ID,
			Title:      q.Title,
			Type:       q.Type,
			Answers:    map[string]int{},
		}
		if q.Type == model.QuestionMultipleChoice {
			s.Options = q.Options
		}

		for _, a := range byQuestion[q.ID] {
			v, err := model.DecodeAnswerValue(q.Type, a.Value)
			if err != nil {
				log.Warnf("aggregate.summarize.decode: %s", err)
				continue
			}
			switch v.Kind {
			case model.AnswerChoices:
				for _, choice := range v.Choices {
					s.Answers[choice]++
				}
			case model.AnswerText:
				s.Answers[v.Text]++
			}
			s.Total++
		}

		summaries[i] = s
	}
	return summaries
}

// Percent is the share of total shown next to a tally, rounded to the
// nearest integer. A total of zero yields zero.
func Percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

// NoAnswer is displayed when a submission skipped a question.
const NoAnswer = "No answer"

type TranscriptEntry struct {
	QuestionID int64  `json:"questionId"`
	Title      string `json:"title"`
	Value      string `json:"value"`
	Answered   bool   `json:"answered"`
}

// Transcript is one submission rendered question by question.
type Transcript struct {
	SubmissionID int64             `json:"submissionId"`
	SubmittedAt  time.Time         `json:"submittedAt"`
	Entries      []TranscriptEntry `json:"entries"`
}

// Transcripts renders every submission against the question list.
// Multi-select answers are joined with ", "; a value that fails to
// decode falls back to the raw stored string.
func Transcripts(questions []model.Question, submissions []model.Submission, answers []model.Answer) []Transcript {
	type key struct {
		submission int64
		question   int64
	}
	index := make(map[key]model.Answer, len(answers))
	for _, a := range answers {
		index[key{a.SubmissionID, a.QuestionID}] = a
	}

	transcripts := make([]Transcript, len(submissions))
	for i, sub := range submissions {
		t := Transcript{
			SubmissionID: sub.ID,
			SubmittedAt:  sub.SubmittedAt,
			Entries:      make([]TranscriptEntry, len(questions)),
		}

		for j, q := range questions {
			entry := TranscriptEntry{QuestionID: q.ID, Title: q.Title}

			a, ok := index[key{sub.ID, q.ID}]
			if !ok {
				entry.Value = NoAnswer
				t.Entries[j] = entry
				continue
			}

			entry.Answered = true
			v, err := model.DecodeAnswerValue(q.Type, a.Value)
			if err != nil {
				log.Debugf("aggregate.transcript.decode: %s", err)
				entry.Value = a.Value
			} else if v.Kind == model.AnswerChoices {
				entry.Value = strings.Join(v.Choices, ", ")
			} else {
				entry.Value = v.Text
			}
			t.Entries[j] = entry
		}

		transcripts[i] = t
	}
	return transcripts
}
