// Package publish translates builder drafts and edit-page question
// sets into persisted form and question rows.
package publish

import (
	"strings"

	"github.com/formwave/formwave/model"
)

// questionTypes is the one-way collapse of the builder field taxonomy
// into the persisted question taxonomy. Keeping it as an explicit table
// makes the lossy cases visible instead of burying them in conditionals.
var questionTypes = map[model.FieldType]model.QuestionType{
	model.FieldText:     model.QuestionText,
	model.FieldTextarea: model.QuestionText,
	model.FieldNumber:   model.QuestionText,
	model.FieldEmail:    model.QuestionText,
	model.FieldDate:     model.QuestionText,
	model.FieldSelect:   model.QuestionMultipleChoice,
	model.FieldCheckbox: model.QuestionMultipleChoice,
	model.FieldRadio:    model.QuestionMultipleChoice,
}

func QuestionTypeFor(t model.FieldType) model.QuestionType {
	if qt, ok := questionTypes[t]; ok {
		return qt
	}
	return model.QuestionText
}

// ValidationError names the offending field so the client can render
// the message inline. It is always produced before any database write.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateNewForm checks the create-form contract: non-empty title and
// at least one field.
func ValidateNewForm(title string, fields []model.Field) *ValidationError {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "Form title is required"}
	}
	if len(fields) == 0 {
		return &ValidationError{Field: "fields", Message: "You need to add at least one field"}
	}
	return nil
}

// ValidateEdit checks the edit-form contract before any write: title,
// at least one question, every question titled, and multiple choice
// questions carrying at least two options.
func ValidateEdit(title string, questions []model.Question) *ValidationError {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "Form title is required"}
	}
	if len(questions) == 0 {
		return &ValidationError{Field: "questions", Message: "You need to add at least one question"}
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Title) == "" {
			return &ValidationError{Field: "questions", Message: "All questions must have a title"}
		}
		if q.Type == model.QuestionMultipleChoice && len(q.Options) < 2 {
			return &ValidationError{Field: "questions", Message: "Multiple choice questions must have at least 2 options"}
		}
	}
	return nil
}

// BuildQuestions maps a draft's field sequence onto question rows,
// with position equal to the field's index. The full field shape is
// carried over so nothing is lost on the round trip.
func BuildQuestions(formID int64, fields []model.Field) []model.Question {
	questions := make([]model.Question, len(fields))
	for i, f := range fields {
		questions[i] = model.Question{
			FormID:      formID,
			Title:       f.Label,
			Type:        QuestionTypeFor(f.Type),
			FieldType:   f.Type,
			Required:    f.Required,
			Options:     f.Options,
			Placeholder: f.Placeholder,
			HelpText:    f.HelpText,
			Styles:      f.Styles,
			Position:    i,
		}
	}
	return questions
}

// SentinelQuestionID keeps the delete-removed-questions statement from
// degenerating into an unconditional delete when no questions remain.
const SentinelQuestionID int64 = -1

// Diff is the outcome of comparing the edit page's in-memory question
// set against what is persisted, keyed off the IsNew flag.
type Diff struct {
	// Update holds persisted questions to update in place, with their
	// position recomputed from their index in the combined set.
	Update []model.Question
	// Insert holds new questions, positioned after the existing ones.
	Insert []model.Question
	// RemainingIDs are the persisted ids still present; anything not
	// in this set gets deleted.
	RemainingIDs []int64
}

func DiffQuestions(questions []model.Question) Diff {
	var d Diff
	for i, q := range questions {
		if q.IsNew {
			q.ID = 0
			d.Insert = append(d.Insert, q)
		} else {
			q.Position = i
			d.Update = append(d.Update, q)
			d.RemainingIDs = append(d.RemainingIDs, q.ID)
		}
	}
	for i := range d.Insert {
		d.Insert[i].Position = len(d.Update) + i
	}
	return d
}

// KeepIDs returns the id set for the NOT IN delete filter, substituting
// the sentinel when nothing remains.
func (d Diff) KeepIDs() []int64 {
	if len(d.RemainingIDs) == 0 {
		return []int64{SentinelQuestionID}
	}
	return d.RemainingIDs
}
