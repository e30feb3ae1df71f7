package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type Submission struct {
	ID          int64     `json:"id"`
	FormID      int64     `json:"formId,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Answer is the stored row. Value holds raw text for text questions
// and a JSON-encoded array of selected options for multiple choice.
// All encoding and decoding goes through AnswerValue so the
// parse-as-array-else-scalar dance lives in exactly one place.
type Answer struct {
	SubmissionID int64  `json:"submissionId,omitempty"`
	QuestionID   int64  `json:"questionId"`
	Value        string `json:"value"`
}

type AnswerKind int

const (
	AnswerText AnswerKind = iota
	AnswerChoices
)

// AnswerValue is the tagged in-memory form of an answer.
type AnswerValue struct {
	Kind    AnswerKind
	Text    string
	Choices []string
}

func TextAnswer(text string) AnswerValue {
	return AnswerValue{Kind: AnswerText, Text: text}
}

func ChoicesAnswer(choices ...string) AnswerValue {
	return AnswerValue{Kind: AnswerChoices, Choices: choices}
}

// Encode serializes the value for storage.
func (v AnswerValue) Encode() (string, error) {
	switch v.Kind {
	case AnswerText:
		return v.Text, nil
	case AnswerChoices:
		choices := v.Choices
		if choices == nil {
			choices = []string{}
		}
		raw, err := json.Marshal(choices)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return "", fmt.Errorf("unknown answer kind %d", v.Kind)
}

// DecodeAnswerValue parses a stored value according to the question
// type. For multiple choice questions a value that is not a JSON array
// of strings is an error; callers decide whether to skip or fall back.
func DecodeAnswerValue(qt QuestionType, raw string) (AnswerValue, error) {
	if qt != QuestionMultipleChoice {
		return TextAnswer(raw), nil
	}

	var choices []string
	if err := json.Unmarshal([]byte(raw), &choices); err != nil {
		return AnswerValue{}, fmt.Errorf("malformed choice value %q: %w", raw, err)
	}
	// JSON null unmarshals into a nil slice without error
	if choices == nil {
		return AnswerValue{}, fmt.Errorf("malformed choice value %q: not an array", raw)
	}
	return ChoicesAnswer(choices...), nil
}
