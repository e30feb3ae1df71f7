package publish

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwave/formwave/model"
)

func TestQuestionTypeFor(t *testing.T) {
	cases := []struct {
		in   model.FieldType
		want model.QuestionType
	}{
		{model.FieldText, model.QuestionText},
		{model.FieldTextarea, model.QuestionText},
		{model.FieldNumber, model.QuestionText},
		{model.FieldEmail, model.QuestionText},
		{model.FieldDate, model.QuestionText},
		{model.FieldSelect, model.QuestionMultipleChoice},
		{model.FieldCheckbox, model.QuestionMultipleChoice},
		{model.FieldRadio, model.QuestionMultipleChoice},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, QuestionTypeFor(c.in), "field type %s", c.in)
	}
}

func TestValidateNewForm(t *testing.T) {
	fields := []model.Field{{ID: "f1", Type: model.FieldText, Label: "Name"}}

	assert.Nil(t, ValidateNewForm("Survey", fields))

	err := ValidateNewForm("", fields)
	require.NotNil(t, err)
	assert.Equal(t, "title", err.Field)
	assert.Equal(t, "Form title is required", err.Message)

	err = ValidateNewForm("   ", fields)
	require.NotNil(t, err)
	assert.Equal(t, "title", err.Field)

	err = ValidateNewForm("Survey", nil)
	require.NotNil(t, err)
	assert.Equal(t, "fields", err.Field)
	assert.Equal(t, "You need to add at least one field", err.Message)
}

func TestValidateEdit(t *testing.T) {
	ok := []model.Question{
		{ID: 1, Title: "Name", Type: model.QuestionText},
		{ID: 2, Title: "Color", Type: model.QuestionMultipleChoice, Options: []string{"Red", "Blue"}},
	}
	assert.Nil(t, ValidateEdit("Survey", ok))

	err := ValidateEdit("", ok)
	require.NotNil(t, err)
	assert.Equal(t, "Form title is required", err.Message)

	err = ValidateEdit("Survey", nil)
	require.NotNil(t, err)
	assert.Equal(t, "You need to add at least one question", err.Message)

	err = ValidateEdit("Survey", []model.Question{{ID: 1, Title: "  ", Type: model.QuestionText}})
	require.NotNil(t, err)
	assert.Equal(t, "All questions must have a title", err.Message)

	err = ValidateEdit("Survey", []model.Question{
		{ID: 1, Title: "Color", Type: model.QuestionMultipleChoice, Options: []string{"Red"}},
	})
	require.NotNil(t, err)
	assert.Equal(t, "Multiple choice questions must have at least 2 options", err.Message)
}

func TestBuildQuestions(t *testing.T) {
	styles := model.DefaultStyles()
	styles.TextColor = "#111827"
	fields := []model.Field{
		{
			ID:          "f1",
			Type:        model.FieldEmail,
			Label:       "Email",
			Placeholder: "you@example.com",
			HelpText:    "We never share it",
			Required:    true,
			Styles:      styles,
		},
		{
			ID:      "f2",
			Type:    model.FieldCheckbox,
			Label:   "Toppings",
			Options: []string{"Cheese", "Mushrooms"},
			Styles:  model.DefaultStyles(),
		},
	}

	got := BuildQuestions(42, fields)

	want := []model.Question{
		{
			FormID:      42,
			Title:       "Email",
			Type:        model.QuestionText,
			FieldType:   model.FieldEmail,
			Required:    true,
			Placeholder: "you@example.com",
			HelpText:    "We never share it",
			Styles:      styles,
			Position:    0,
		},
		{
			FormID:    42,
			Title:     "Toppings",
			Type:      model.QuestionMultipleChoice,
			FieldType: model.FieldCheckbox,
			Options:   []string{"Cheese", "Mushrooms"},
			Styles:    model.DefaultStyles(),
			Position:  1,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildQuestions mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffQuestions(t *testing.T) {
	questions := []model.Question{
		{ID: 10, Title: "Name", Type: model.QuestionText, Position: 0},
		{Title: "Added", Type: model.QuestionText, IsNew: true},
		{ID: 12, Title: "Color", Type: model.QuestionMultipleChoice, Options: []string{"Red", "Blue"}, Position: 2},
	}

	d := DiffQuestions(questions)

	require.Len(t, d.Update, 2)
	assert.Equal(t, int64(10), d.Update[0].ID)
	assert.Equal(t, 0, d.Update[0].Position)
	assert.Equal(t, int64(12), d.Update[1].ID)
	assert.Equal(t, 2, d.Update[1].Position)

	require.Len(t, d.Insert, 1)
	assert.Equal(t, "Added", d.Insert[0].Title)
	assert.Zero(t, d.Insert[0].ID)
	// inserts land after the surviving questions
	assert.Equal(t, 2, d.Insert[0].Position)

	assert.Equal(t, []int64{10, 12}, d.RemainingIDs)
	assert.Equal(t, []int64{10, 12}, d.KeepIDs())
}

func TestDiffQuestionsAllNew(t *testing.T) {
	d := DiffQuestions([]model.Question{
		{Title: "One", Type: model.QuestionText, IsNew: true},
		{Title: "Two", Type: model.QuestionText, IsNew: true},
	})

	assert.Empty(t, d.Update)
	assert.Empty(t, d.RemainingIDs)
	assert.Equal(t, []int64{SentinelQuestionID}, d.KeepIDs())
	assert.Equal(t, 0, d.Insert[0].Position)
	assert.Equal(t, 1, d.Insert[1].Position)
}
