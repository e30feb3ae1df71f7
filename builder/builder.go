package builder

import (
	"strconv"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/formwave/formwave/model"
)

// Builder holds the ordered field sequence of a form under
// construction, plus the current selection. Mutations are plain
// synchronous method calls; callers serialize access (see Draft).
type Builder struct {
	fields     []model.Field
	selectedID string
	editorOpen bool
}

func New() *Builder {
	return &Builder{}
}

// From seeds a builder with an existing field sequence.
func From(fields []model.Field) *Builder {
	b := &Builder{fields: make([]model.Field, len(fields))}
	copy(b.fields, fields)
	return b
}

func (b *Builder) Len() int {
	return len(b.fields)
}

// Fields returns a copy of the current sequence.
func (b *Builder) Fields() []model.Field {
	out := make([]model.Field, len(b.fields))
	copy(out, b.fields)
	return out
}

func (b *Builder) SelectedID() string {
	return b.selectedID
}

func (b *Builder) EditorOpen() bool {
	return b.editorOpen
}

func (b *Builder) Field(id string) (model.Field, bool) {
	for _, f := range b.fields {
		if f.ID == id {
			return f, true
		}
	}
	return model.Field{}, false
}

func defaultLabel(t model.FieldType) string {
	s := string(t)
	return "New " + strings.ToUpper(s[:1]) + s[1:]
}

// AddField appends a fresh field of the given type with defaults,
// selects it and opens the editor. Choice-like types are seeded with
// three placeholder options.
func (b *Builder) AddField(t model.FieldType) model.Field {
	f := model.Field{
		ID:     uuid.Must(uuid.NewV4()).String(),
		Type:   t,
		Label:  defaultLabel(t),
		Styles: model.DefaultStyles(),
	}
	if t.HasOptions() {
		f.Options = []string{"Option 1", "Option 2", "Option 3"}
	}

	b.fields = append(b.fields, f)
	b.selectedID = f.ID
	b.editorOpen = true
	return f
}

// Reorder moves the field at src to dst, shifting the others. Out of
// range indices and src == dst are no-ops (a drag cancelled outside a
// drop target arrives here as dst = -1).
func (b *Builder) Reorder(src, dst int) {
	if src == dst ||
		src < 0 || src >= len(b.fields) ||
		dst < 0 || dst >= len(b.fields) {
		return
	}

	moved := b.fields[src]
	b.fields = append(b.fields[:src], b.fields[src+1:]...)

	tail := append([]model.Field{moved}, b.fields[dst:]...)
	b.fields = append(b.fields[:dst], tail...)
}

// Select marks a field as the editor target and opens the editor.
func (b *Builder) Select(id string) {
	if _, ok := b.Field(id); !ok {
		return
	}
	b.selectedID = id
	b.editorOpen = true
}

func (b *Builder) CloseEditor() {
	b.editorOpen = false
}

// DeleteField removes the field; deleting the selected field clears
// the selection and closes the editor.
func (b *Builder) DeleteField(id string) {
	for i, f := range b.fields {
		if f.ID == id {
			b.fields = append(b.fields[:i], b.fields[i+1:]...)
			break
		}
	}
	if b.selectedID == id {
		b.selectedID = ""
		b.editorOpen = false
	}
}

// StylePatch is a partial update of a field's style block. Nil members
// leave the current value untouched.
type StylePatch struct {
	TextColor       *string           `json:"textColor"`
	BackgroundColor *string           `json:"backgroundColor"`
	BorderColor     *string           `json:"borderColor"`
	FontSize        *model.FontSize   `json:"fontSize"`
	Width           *model.FieldWidth `json:"width"`
}

// FieldPatch is a partial update of a field. Nil members leave the
// current value untouched; Options replaces the whole option list.
type FieldPatch struct {
	Label        *string     `json:"label"`
	Placeholder  *string     `json:"placeholder"`
	HelpText     *string     `json:"helpText"`
	DefaultValue *string     `json:"defaultValue"`
	Required     *bool       `json:"required"`
	Options      *[]string   `json:"options"`
	Styles       *StylePatch `json:"styles"`
}

// UpdateField merges the patch into the field matching id. Unknown ids
// are a no-op. Every editor mutation funnels through here, so edits
// are live: there is no separate commit step.
func (b *Builder) UpdateField(id string, patch FieldPatch) {
	for i := range b.fields {
		if b.fields[i].ID != id {
			continue
		}
		f := &b.fields[i]

		if patch.Label != nil {
			f.Label = *patch.Label
		}
		if patch.Placeholder != nil {
			f.Placeholder = *patch.Placeholder
		}
		if patch.HelpText != nil {
			f.HelpText = *patch.HelpText
		}
		if patch.DefaultValue != nil {
			f.DefaultValue = *patch.DefaultValue
		}
		if patch.Required != nil {
			f.Required = *patch.Required
		}
		if patch.Options != nil && f.Type.HasOptions() {
			opts := make([]string, len(*patch.Options))
			copy(opts, *patch.Options)
			f.Options = opts
		}
		if patch.Styles != nil {
			applyStyles(&f.Styles, *patch.Styles)
		}
		return
	}
}

func applyStyles(s *model.FieldStyles, patch StylePatch) {
	if patch.TextColor != nil {
		s.TextColor = *patch.TextColor
	}
	if patch.BackgroundColor != nil {
		s.BackgroundColor = *patch.BackgroundColor
	}
	if patch.BorderColor != nil {
		s.BorderColor = *patch.BorderColor
	}
	if patch.FontSize != nil {
		s.FontSize = *patch.FontSize
	}
	if patch.Width != nil {
		s.Width = *patch.Width
	}
}

// AddOption appends "Option N" to a choice field, N being the new count.
func (b *Builder) AddOption(fieldID string) {
	for i := range b.fields {
		f := &b.fields[i]
		if f.ID != fieldID || !f.Type.HasOptions() {
			continue
		}
		f.Options = append(f.Options, "Option "+strconv.Itoa(len(f.Options)+1))
		return
	}
}

// RemoveOption drops the option at index. A choice field always keeps
// at least one option, so removing the last remaining one is a no-op.
func (b *Builder) RemoveOption(fieldID string, index int) {
	for i := range b.fields {
		f := &b.fields[i]
		if f.ID != fieldID || !f.Type.HasOptions() {
			continue
		}
		if len(f.Options) <= 1 || index < 0 || index >= len(f.Options) {
			return
		}
		f.Options = append(f.Options[:index], f.Options[index+1:]...)
		return
	}
}

func (b *Builder) UpdateOption(fieldID string, index int, text string) {
	for i := range b.fields {
		f := &b.fields[i]
		if f.ID != fieldID || !f.Type.HasOptions() {
			continue
		}
		if index < 0 || index >= len(f.Options) {
			return
		}
		f.Options[index] = text
		return
	}
}
