package validation

import "strings"

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Errors holds at most one FieldError per field, in the order the rules
// failed. An empty Errors means the input is valid.
type Errors []FieldError

func (e Errors) Valid() bool {
	return len(e) == 0
}

func (e Errors) Has(field string) bool {
	_, ok := e.lookup(field)
	return ok
}

// Get returns the message attached to field, or "" if it passed.
func (e Errors) Get(field string) string {
	fe, _ := e.lookup(field)
	return fe.Message
}

func (e Errors) lookup(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	m := make(map[string]string, len(e))
	for _, fe := range e {
		m[fe.Field] = fe.Message
	}
	return m
}

// Localize rewrites every message in locale.
func (e Errors) Localize(locale Locale) Errors {
	out := make(Errors, len(e))
	for i, fe := range e {
		fe.Message = Message(locale, fe.Field, fe.Rule)
		out[i] = fe
	}
	return out
}

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) add(field, rule string) {
	if e.Has(field) {
		return
	}
	*e = append(*e, FieldError{
		Field:   field,
		Rule:    rule,
		Message: Message(DefaultLocale, field, rule),
	})
}
