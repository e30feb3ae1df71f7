package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueEncode(t *testing.T) {
	raw, err := TextAnswer("Great service").Encode()
	require.NoError(t, err)
	assert.Equal(t, "Great service", raw)

	raw, err = ChoicesAnswer("Red", "Blue").Encode()
	require.NoError(t, err)
	assert.Equal(t, `["Red","Blue"]`, raw)

	// an empty selection stores an empty array, not null
	raw, err = ChoicesAnswer().Encode()
	require.NoError(t, err)
	assert.Equal(t, `[]`, raw)

	_, err = AnswerValue{Kind: AnswerKind(42)}.Encode()
	assert.Error(t, err)
}

func TestDecodeAnswerValueText(t *testing.T) {
	v, err := DecodeAnswerValue(QuestionText, "anything at all")
	require.NoError(t, err)
	assert.Equal(t, AnswerText, v.Kind)
	assert.Equal(t, "anything at all", v.Text)

	// even array-looking text stays verbatim for text questions
	v, err = DecodeAnswerValue(QuestionText, `["Red"]`)
	require.NoError(t, err)
	assert.Equal(t, `["Red"]`, v.Text)
}

func TestDecodeAnswerValueChoices(t *testing.T) {
	v, err := DecodeAnswerValue(QuestionMultipleChoice, `["Red","Blue"]`)
	require.NoError(t, err)
	assert.Equal(t, AnswerChoices, v.Kind)
	assert.Equal(t, []string{"Red", "Blue"}, v.Choices)

	v, err = DecodeAnswerValue(QuestionMultipleChoice, `[]`)
	require.NoError(t, err)
	assert.Empty(t, v.Choices)
}

func TestDecodeAnswerValueMalformed(t *testing.T) {
	_, err := DecodeAnswerValue(QuestionMultipleChoice, `{not json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed choice value")

	_, err = DecodeAnswerValue(QuestionMultipleChoice, `just text`)
	assert.Error(t, err)

	// null is valid JSON but not an array of strings
	_, err = DecodeAnswerValue(QuestionMultipleChoice, `null`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an array")
}

func TestAnswerRoundTrip(t *testing.T) {
	original := ChoicesAnswer("Mushrooms", "Extra cheese")

	raw, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeAnswerValue(QuestionMultipleChoice, raw)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
