package raas

// DefaultRenderField is the result field the service uses for the fetched
// page body.
const DefaultRenderField = "body"

// Render returns the string stored under field in r. An empty field name
// selects DefaultRenderField.
func Render(r Result, field string) (string, error) {
	if field == "" {
		field = DefaultRenderField
	}
	v, ok := r[field]
	if !ok {
		return "", Errorf(EMALFORMED, "result has no %q field", field)
	}
	s, ok := v.(string)
	if !ok {
		return "", Errorf(EMALFORMED, "result field %q is %T, not a string", field, v)
	}
	return s, nil
}
