package catalog

// DateLayout is the display form used for all catalog dates.
const DateLayout = "2006-01-02"

// Field is one named, display-ready value of a record.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is any catalog entity that can enumerate its fields as an ordered
// list of name/value pairs. Exporters and field-selection prompts operate on
// this uniform shape instead of inspecting concrete types.
type Record interface {
	Fields() []Field
}

// Projection is a subset of a record's fields. It is itself a Record, so
// field-restricted rows flow through the same export path as full entities.
type Projection []Field

// Fields returns the projected fields.
func (p Projection) Fields() []Field {
	return p
}

// Project restricts r to the named fields, preserving the record's own field
// order. Names not present on the record are ignored.
func Project(r Record, names []string) Projection {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out Projection
	for _, f := range r.Fields() {
		if want[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

// FieldNames returns the field names of r in declaration order.
func FieldNames(r Record) []string {
	fields := r.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
