package model

import "fmt"

// Language is an ISO-style label language code (EN, FR, ...).
type Language string

// Panel identifies a physical face of the packaging.
type Panel string

const (
	PanelFront Panel = "Front"
	PanelBack  Panel = "Back"
)

// Source identifies where a field was extracted from.
type Source string

const (
	SourceCopyDoc Source = "copy_doc"
	SourceArtwork Source = "artwork"
)

// Field is a single named piece of label text tracked per panel and
// language. Fields are immutable once extracted.
type Field struct {
	Name       string   `json:"name"`
	Language   Language `json:"language"`
	Panel      Panel    `json:"panel"`
	Value      string   `json:"value"`
	Source     Source   `json:"source"`
	FontSizePt *float64 `json:"font_size_pt,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"` // 0..1, nil = unknown
}

// Key returns the identity of the field within a run.
func (f Field) Key() FieldKey {
	return FieldKey{Name: f.Name, Panel: f.Panel, Language: f.Language}
}

// FieldKey identifies a field by (name, panel, language). Used to pair
// copy-document fields with artwork fields and to address verified values.
type FieldKey struct {
	Name     string   `json:"name"`
	Panel    Panel    `json:"panel"`
	Language Language `json:"language"`
}

func (k FieldKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Panel, k.Language, k.Name)
}

// FieldSet is an indexed collection of fields from one document.
type FieldSet struct {
	Fields []Field
	byKey  map[FieldKey]*Field
}

// NewFieldSet builds a FieldSet with keyed lookups. Later duplicates of
// the same key win, matching last-writer semantics of the extractors.
func NewFieldSet(fields []Field) *FieldSet {
	s := &FieldSet{
		Fields: fields,
		byKey:  make(map[FieldKey]*Field, len(fields)),
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		s.byKey[f.Key()] = f
	}
	return s
}

// ByKey returns the field for the given key, or nil if not present.
func (s *FieldSet) ByKey(k FieldKey) *Field {
	return s.byKey[k]
}

// Languages returns the distinct languages present, in first-seen order.
func (s *FieldSet) Languages() []Language {
	seen := make(map[Language]bool)
	var out []Language
	for _, f := range s.Fields {
		if !seen[f.Language] {
			seen[f.Language] = true
			out = append(out, f.Language)
		}
	}
	return out
}
