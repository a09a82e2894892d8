package query

import (
	"reflect"
	"strings"
	"time"
	"unicode"
)

// Field describes a declared, filterable attribute of a resource type.
type Field struct {
	Attr      string
	Column    string
	Reference bool
}

// FieldSet is the declared attribute set of a resource type, keyed by the
// attribute name used in query strings and payloads.
type FieldSet map[string]Field

// Resolve returns the declared field for an attribute name. The identifier
// attribute is always declared.
func (f FieldSet) Resolve(attr string) (Field, bool) {
	if attr == "id" || attr == "_id" {
		return Field{Attr: "id", Column: "id"}, true
	}
	field, ok := f[attr]
	return field, ok
}

// Column returns the database column an attribute resolves to, falling back
// to the identifier column for undeclared attributes. Reference attributes
// resolve to their foreign-key column.
func (f FieldSet) Column(attr string) string {
	field, ok := f.Resolve(attr)
	if !ok {
		return "id"
	}
	return field.Column
}

// FieldsOf builds the declared field set for a model type by reflecting over
// its struct fields. Embedded structs contribute their fields; a linked
// struct field with a matching `<Name>ID` sibling is declared as a reference
// attribute resolving to the foreign-key column.
func FieldsOf(model interface{}) FieldSet {
	fields := FieldSet{}
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fields
	}
	collectFields(t, fields)
	return fields
}

func collectFields(t reflect.Type, fields FieldSet) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			et := sf.Type
			for et.Kind() == reflect.Ptr {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				collectFields(et, fields)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		attr := jsonName(sf)
		if attr == "" {
			continue
		}

		ft := sf.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		// Linked structs with a foreign-key sibling become reference
		// attributes; other struct fields are not filterable.
		if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(time.Time{}) {
			if _, ok := t.FieldByName(sf.Name + "ID"); ok {
				fields[attr] = Field{
					Attr:      attr,
					Column:    snakeCase(sf.Name) + "_id",
					Reference: true,
				}
			}
			continue
		}
		if ft.Kind() == reflect.Slice || ft.Kind() == reflect.Map {
			continue
		}

		fields[attr] = Field{Attr: attr, Column: columnName(sf)}
	}
}

// columnName resolves the database column for a struct field, honoring an
// explicit gorm column tag.
func columnName(sf reflect.StructField) string {
	for _, part := range strings.Split(sf.Tag.Get("gorm"), ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return snakeCase(sf.Name)
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		name = snakeCase(sf.Name)
	}
	return name
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			// Keep acronym runs together: "AppID" -> "app_id"
			if i > 0 && (!unicode.IsUpper(rune(name[i-1])) ||
				(i+1 < len(name) && unicode.IsLower(rune(name[i+1])))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
