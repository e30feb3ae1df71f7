package builder

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"github.com/formwave/formwave/model"
)

// Draft is one user's form-in-progress. Each HTTP mutation maps to one
// builder call; the mutex serializes them so the builder itself stays
// single-threaded.
type Draft struct {
	ID          string
	OwnerID     int64
	Title       string
	Description string
	Type        model.FormType
	CreatedAt   time.Time

	mu sync.Mutex
	b  *Builder
}

// Update runs fn against the draft's builder under the draft lock.
func (d *Draft) Update(fn func(*Builder)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.b)
}

// SetMeta replaces the draft's form metadata.
func (d *Draft) SetMeta(title, description string, formType model.FormType) {
	d.mu.Lock()
	d.Title = title
	d.Description = description
	d.Type = formType
	d.mu.Unlock()
}

// Meta reads the draft's form metadata.
func (d *Draft) Meta() (title, description string, formType model.FormType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Title, d.Description, d.Type
}

// View is the wire shape of a draft.
type View struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        model.FormType `json:"type"`
	Fields      []model.Field  `json:"fields"`
	SelectedID  string         `json:"selectedId,omitempty"`
	EditorOpen  bool           `json:"editorOpen"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (d *Draft) Snapshot() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Type:        d.Type,
		Fields:      d.b.Fields(),
		SelectedID:  d.b.SelectedID(),
		EditorOpen:  d.b.EditorOpen(),
		CreatedAt:   d.CreatedAt,
	}
}

// Fields returns a copy of the draft's current field sequence.
func (d *Draft) Fields() []model.Field {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.b.Fields()
}

// Store keeps in-flight drafts in memory, keyed by draft id. Drafts
// are discarded on publish; they are not persisted across restarts.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

func NewStore() *Store {
	return &Store{drafts: make(map[string]*Draft)}
}

func (s *Store) Create(ownerID int64, title, description string, formType model.FormType) *Draft {
	d := &Draft{
		ID:          uuid.Must(uuid.NewV4()).String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Type:        formType,
		CreatedAt:   time.Now(),
		b:           New(),
	}

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return d
}

func (s *Store) Get(id string) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	return d, ok
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}
