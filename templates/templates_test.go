package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwave/formwave/model"
	"github.com/formwave/formwave/publish"
)

func TestCatalogIsWellFormed(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	seen := map[string]bool{}
	for _, tpl := range all {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Title)
		assert.NotEmpty(t, tpl.Category)
		assert.False(t, seen[tpl.ID], "duplicate template id %s", tpl.ID)
		seen[tpl.ID] = true

		require.NotEmpty(t, tpl.Fields, "template %s has no fields", tpl.ID)
		for _, f := range tpl.Fields {
			assert.True(t, f.Type.Valid(), "template %s field %s", tpl.ID, f.ID)
			assert.NotEmpty(t, f.Label, "template %s field %s", tpl.ID, f.ID)
			if f.Type.HasOptions() {
				assert.GreaterOrEqual(t, len(f.Options), 2,
					"template %s choice field %s", tpl.ID, f.ID)
			} else {
				assert.Empty(t, f.Options, "template %s field %s", tpl.ID, f.ID)
			}
		}

		// every template must survive the publish validation as-is
		assert.Nil(t, publish.ValidateNewForm(tpl.Title, tpl.Fields), "template %s", tpl.ID)
	}
}

func TestByID(t *testing.T) {
	tpl, ok := ByID("contact")
	require.True(t, ok)
	assert.Equal(t, "Contact Form", tpl.Title)
	assert.Len(t, tpl.Fields, 4)
	assert.Equal(t, model.FieldEmail, tpl.Fields[1].Type)

	_, ok = ByID("no-such-template")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	All()[0].ID = "mutated"
	tpl, ok := ByID("contact")
	require.True(t, ok)
	assert.Equal(t, "contact", tpl.ID)
}

func TestReturnedTemplatesDoNotAliasCatalog(t *testing.T) {
	all := All()
	all[0].Fields[0].Label = "mutated"

	fromAll, ok := ByID(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", fromAll.Fields[0].Label)

	feedback, ok := ByID("customer-feedback")
	require.True(t, ok)
	feedback.Fields[2].Options[0] = "mutated"

	again, ok := ByID("customer-feedback")
	require.True(t, ok)
	assert.Equal(t, "Product A", again.Fields[2].Options[0])
}
