package builder

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwave/formwave/model"
)

func TestStoreCreateGetDelete(t *testing.T) {
	s := NewStore()

	d := s.Create(7, "Customer Survey", "Quarterly feedback", model.FormSurvey)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, int64(7), d.OwnerID)
	assert.False(t, d.CreatedAt.IsZero())

	got, ok := s.Get(d.ID)
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)

	s.Delete(d.ID)
	_, ok = s.Get(d.ID)
	assert.False(t, ok)
}

func TestDraftSnapshot(t *testing.T) {
	s := NewStore()
	d := s.Create(1, "Survey", "", model.FormSurvey)

	var added model.Field
	d.Update(func(b *Builder) {
		added = b.AddField(model.FieldRadio)
	})

	view := d.Snapshot()
	assert.Equal(t, d.ID, view.ID)
	assert.Equal(t, "Survey", view.Title)
	require.Len(t, view.Fields, 1)
	assert.Equal(t, added.ID, view.Fields[0].ID)
	assert.Equal(t, added.ID, view.SelectedID)
	assert.True(t, view.EditorOpen)

	// the snapshot holds a copy, not the live slice
	view.Fields[0].Label = "mutated"
	assert.Equal(t, "New Radio", d.Fields()[0].Label)
}

func TestDraftMeta(t *testing.T) {
	s := NewStore()
	d := s.Create(1, "Before", "", model.FormSurvey)

	d.SetMeta("After", "Updated description", model.FormQuiz)

	title, description, formType := d.Meta()
	assert.Equal(t, "After", title)
	assert.Equal(t, "Updated description", description)
	assert.Equal(t, model.FormQuiz, formType)
}

func TestDraftConcurrentUpdates(t *testing.T) {
	s := NewStore()
	d := s.Create(1, "Survey", "", model.FormSurvey)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Update(func(b *Builder) {
				b.AddField(model.FieldText)
			})
		}()
	}
	wg.Wait()

	assert.Len(t, d.Fields(), 20)
}
