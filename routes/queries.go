package routes

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/model"
)

// Rendered whenever a form is missing OR belongs to someone else; the
// two cases are deliberately indistinguishable to the caller.
const msgFormNotFound = "Form not found or you do not have permission to view it"

// getOwnedForm loads a form only if it belongs to userID.
// sql.ErrNoRows covers both absence and foreign ownership.
func getOwnedForm(ctx context.Context, app app.App, formID, userID int64) (model.Form, error) {
	f := model.Form{}
	var settings string
	err := app.QueryRowContext(ctx, `
		SELECT id, user_id, version, title, description, type, settings, created_at
		FROM form
		WHERE id = ? AND user_id = ?`,
		formID,
		userID,
	).Scan(&f.ID, &f.UserID, &f.Version, &f.Title, &f.Description, &f.Type, &settings, &f.CreatedAt)
	if err != nil {
		return f, err
	}

	if settings != "" {
		if err := json.Unmarshal([]byte(settings), &f.Settings); err != nil {
			return f, err
		}
	}
	return f, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryQuestions loads a form's questions in position order, full shape.
func queryQuestions(ctx context.Context, db querier, formID int64) ([]model.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, form_id, title, type, field_type, required, options, placeholder, help_text, styles, position
		FROM question
		WHERE form_id = ?
		ORDER BY position`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q := model.Question{}
		var options, styles string
		err = rows.Scan(
			&q.ID, &q.FormID, &q.Title, &q.Type, &q.FieldType,
			&q.Required, &options, &q.Placeholder, &q.HelpText, &styles, &q.Position,
		)
		if err != nil {
			return nil, err
		}

		if options != "" {
			if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
				return nil, err
			}
		}
		if styles != "" {
			if err := json.Unmarshal([]byte(styles), &q.Styles); err != nil {
				return nil, err
			}
		}

		questions = append(questions, q)
	}
	return questions, rows.Err()
}

const insertQuestionSQL = `
	INSERT INTO question (form_id, title, type, field_type, required, options, placeholder, help_text, styles, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// questionJsonColumns serializes the JSON-typed columns of a question row.
func questionJsonColumns(q model.Question) (optionsJson, stylesJson string, err error) {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	rawOptions, err := json.Marshal(options)
	if err != nil {
		return "", "", err
	}

	rawStyles, err := json.Marshal(q.Styles)
	if err != nil {
		return "", "", err
	}

	return string(rawOptions), string(rawStyles), nil
}

// questionArgs serializes a question row for insertQuestionSQL.
func questionArgs(q model.Question) ([]any, error) {
	optionsJson, stylesJson, err := questionJsonColumns(q)
	if err != nil {
		return nil, err
	}

	return []any{
		q.FormID, q.Title, q.Type, q.FieldType, q.Required,
		optionsJson, q.Placeholder, q.HelpText, stylesJson, q.Position,
	}, nil
}

// settingsJson serializes a form's settings map for storage; an absent
// map stores the empty object.
func settingsJson(settings map[string]any) (string, error) {
	if settings == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func querySubmissions(ctx context.Context, db querier, formID int64) ([]model.Submission, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, form_id, submitted_at
		FROM submission
		WHERE form_id = ?
		ORDER BY submitted_at DESC`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		s := model.Submission{}
		if err := rows.Scan(&s.ID, &s.FormID, &s.SubmittedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

func queryAnswers(ctx context.Context, db querier, formID int64) ([]model.Answer, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT a.submission_id, a.question_id, a.value
		FROM answer a
		INNER JOIN submission s ON (a.submission_id = s.id)
		WHERE s.form_id = ?`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []model.Answer{}
	for rows.Next() {
		a := model.Answer{}
		if err := rows.Scan(&a.SubmissionID, &a.QuestionID, &a.Value); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
