package model

import "time"

// QuestionType is the persisted two-valued taxonomy. The richer
// FieldType collapses into it at publish time.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

func (t QuestionType) Valid() bool {
	return t == QuestionText || t == QuestionMultipleChoice
}

type FormType string

const (
	FormSurvey       FormType = "survey"
	FormRegistration FormType = "registration"
	FormContact      FormType = "contact"
	FormQuiz         FormType = "quiz"
	FormOther        FormType = "other"
)

func (t FormType) Valid() bool {
	switch t {
	case FormSurvey, FormRegistration, FormContact, FormQuiz, FormOther:
		return true
	}
	return false
}

type Form struct {
	ID          int64          `json:"id,omitempty"`
	UserID      int64          `json:"userId,omitempty"`
	Version     int            `json:"version,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        FormType       `json:"type"`
	Settings    map[string]any `json:"settings,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	Questions   []Question     `json:"questions,omitempty"`
}

// Question is the persisted shape of a form entry. The full builder
// field shape (field type, placeholder, help text, styles) is always
// persisted and round-tripped alongside the two-valued Type.
type Question struct {
	ID          int64        `json:"id,omitempty"`
	FormID      int64        `json:"formId,omitempty"`
	Title       string       `json:"title"`
	Type        QuestionType `json:"type"`
	FieldType   FieldType    `json:"fieldType,omitempty"`
	Required    bool         `json:"required"`
	Options     []string     `json:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	HelpText    string       `json:"helpText,omitempty"`
	Styles      FieldStyles  `json:"styles"`
	Position    int          `json:"position"`

	// IsNew marks a question the edit flow has not persisted yet.
	// It never reaches the database.
	IsNew bool `json:"isNew,omitempty"`
}
