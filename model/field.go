package model

// FieldType is the builder-time palette of field types. It is richer
// than the persisted QuestionType: several field types collapse into
// one question type at publish time (see the publish package).
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldNumber   FieldType = "number"
	FieldEmail    FieldType = "email"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldRadio    FieldType = "radio"
	FieldDate     FieldType = "date"
)

var fieldTypeNames = map[FieldType]string{
	FieldText:     "Text Input",
	FieldTextarea: "Text Area",
	FieldNumber:   "Number",
	FieldEmail:    "Email",
	FieldSelect:   "Dropdown",
	FieldCheckbox: "Checkboxes",
	FieldRadio:    "Radio Buttons",
	FieldDate:     "Date",
}

func (t FieldType) Valid() bool {
	_, ok := fieldTypeNames[t]
	return ok
}

// DisplayName is the human-readable palette label for this field type.
func (t FieldType) DisplayName() string {
	return fieldTypeNames[t]
}

// HasOptions reports whether fields of this type carry an option list.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldSelect, FieldCheckbox, FieldRadio:
		return true
	}
	return false
}

type FontSize string

const (
	FontSm   FontSize = "sm"
	FontBase FontSize = "base"
	FontLg   FontSize = "lg"
)

type FieldWidth string

const (
	WidthFull         FieldWidth = "full"
	WidthThreeQuarter FieldWidth = "3/4"
	WidthHalf         FieldWidth = "1/2"
)

type FieldStyles struct {
	TextColor       string     `json:"textColor,omitempty"`
	BackgroundColor string     `json:"backgroundColor,omitempty"`
	BorderColor     string     `json:"borderColor,omitempty"`
	FontSize        FontSize   `json:"fontSize"`
	Width           FieldWidth `json:"width"`
}

// DefaultStyles are applied to every freshly added field.
func DefaultStyles() FieldStyles {
	return FieldStyles{FontSize: FontBase, Width: WidthFull}
}

// Field is a single entry in a builder draft. The ID is an opaque
// client-visible identifier, stable across reorders within a draft.
type Field struct {
	ID           string      `json:"id"`
	Type         FieldType   `json:"type"`
	Label        string      `json:"label"`
	Placeholder  string      `json:"placeholder,omitempty"`
	Required     bool        `json:"required"`
	Options      []string    `json:"options,omitempty"`
	DefaultValue string      `json:"defaultValue,omitempty"`
	HelpText     string      `json:"helpText,omitempty"`
	Styles       FieldStyles `json:"styles"`
}
