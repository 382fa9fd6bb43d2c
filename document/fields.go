package document

import (
	"sort"
)

// Fields names row fields and the values to give them. Keys are canonical field names or their short aliases; value
// fields accept a Value, a string (taken as a Literal) or nil, all other fields accept a string or nil. A nil value
// clears the field.
type Fields map[string]interface{}

type fieldSpec struct {
	name  string
	alias string
	// value marks a field holding a Value rather than a string
	value bool
	// pair marks a value field that may hold a *Pair
	pair bool
}

type schema struct {
	row      string
	fields   []fieldSpec
	required []string
	lookup   map[string]int
}

func newSchema(row string, required []string, fields ...fieldSpec) *schema {
	s := &schema{row: row, fields: fields, required: required, lookup: make(map[string]int, len(fields)*2)}
	for i, f := range fields {
		s.lookup[f.name] = i
		if f.alias != "" {
			s.lookup[f.alias] = i
		}
	}
	return s
}

func (s *schema) field(name string) (fieldSpec, bool) {
	i, ok := s.lookup[name]
	if !ok {
		return fieldSpec{}, false
	}
	return s.fields[i], true
}

// names returns the canonical field names in declaration order
func (s *schema) names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// resolve maps f onto canonical field names, converting each input to its stored form. When strict is false unknown
// keys are ignored.
func (s *schema) resolve(op string, f Fields, strict bool) (map[string]interface{}, error) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]interface{}, len(f))
	for _, k := range keys {
		spec, ok := s.field(k)
		if !ok {
			if strict {
				return nil, &UnknownFieldError{Row: s.row, Field: k}
			}
			continue
		}
		if _, dup := out[spec.name]; dup {
			return nil, inputError(op, nil, "field %s given as both %q and %q", spec.name, spec.name, spec.alias)
		}
		v, err := spec.convert(op, s.row, f[k])
		if err != nil {
			return nil, err
		}
		out[spec.name] = v
	}
	return out, nil
}

func (spec fieldSpec) convert(op, row string, in interface{}) (interface{}, error) {
	if spec.value {
		switch v := in.(type) {
		case nil:
			return Value(nil), nil
		case string:
			return Literal(v), nil
		case Value:
			return v, nil
		}
		return nil, inputError(op, in, "%s.%s must be a Value or a string", row, spec.name)
	}
	switch v := in.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case Literal:
		return string(v), nil
	}
	return nil, inputError(op, in, "%s.%s must be a string", row, spec.name)
}
