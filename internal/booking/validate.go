package booking

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	minNameLength    = 2
	maxNameLength    = 100
	minMessageLength = 10
	maxMessageLength = 1000
)

// whitespaceClass is the whitespace browsers match with \s and strip with
// trim(): ASCII space and controls, every Zs space, BOM and line/paragraph
// separators. RE2's \s alone is ASCII only.
const whitespaceClass = `\s\x{000B}\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailRegex = regexp.MustCompile(`^[^` + whitespaceClass + `@]+@[^` + whitespaceClass + `@]+\.[^` + whitespaceClass + `@]+$`)
	cellRegex  = regexp.MustCompile(`^[\d` + whitespaceClass + `\-\+\(\)]+$`)
)

// Messages shown under each failing field.
const (
	MsgNameRequired    = "El Nombre es requerido."
	MsgNameTooShort    = "Nombre debe ser de al menos 2 caracteres."
	MsgNameTooLong     = "El nombre es demasiado largo (max 100 caracteres)."
	MsgDateRequired    = "La fecha es requerida"
	MsgDateInvalid     = "Formato de fecha inválido (YYYY-MM-DD)."
	MsgEmailRequired   = "El email es requerido"
	MsgEmailInvalid    = "Formato de email inválido"
	MsgCellRequired    = "El teléfono es requerido"
	MsgCellInvalid     = "Formato de teléfono inválido."
	MsgMessageRequired = "El mensaje es requerido"
	MsgMessageTooShort = "El mensaje es muy corto (mínimo 10 caracteres)."
	MsgMessageTooLong  = "El mensaje es demasiado largo (max 1000 caracteres)."
)

// FieldErrors maps a field name to the message for its first failed rule.
type FieldErrors map[string]string

// Has reports whether field failed validation.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "".
func (e FieldErrors) Get(field string) string {
	return e[field]
}

// Fields returns the failing field names in card order. Unknown keys sort
// after the known ones, alphabetically.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, f := range fieldOrder {
		if e.Has(f) {
			fields = append(fields, f)
		}
	}
	var extra []string
	for f := range e {
		if !isKnownField(f) {
			extra = append(extra, f)
		}
	}
	sort.Strings(extra)
	return append(fields, extra...)
}

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid booking form: " + strings.Join(parts, "; ")
}

func isKnownField(field string) bool {
	for _, f := range fieldOrder {
		if f == field {
			return true
		}
	}
	return false
}

// ValidationResult is the outcome of Validate. Data holds the escaped and
// trimmed field values regardless of Valid.
type ValidationResult struct {
	Valid  bool
	Errors FieldErrors
	Data   FormInput
}

// Validate checks every field independently and collects all failures.
// Values are trimmed before any rule runs.
func Validate(in FormInput) ValidationResult {
	name := trim(in.Name)
	date := trim(in.Date)
	email := trim(in.Email)
	cell := trim(in.Cell)
	message := trim(in.Message)

	errs := FieldErrors{}

	if msg := validateName(name); msg != "" {
		errs[FieldName] = msg
	}
	if msg := validateDate(date); msg != "" {
		errs[FieldDate] = msg
	}
	if msg := validateEmail(email); msg != "" {
		errs[FieldEmail] = msg
	}
	if msg := validateCell(cell); msg != "" {
		errs[FieldCell] = msg
	}
	if msg := validateMessage(message); msg != "" {
		errs[FieldMessage] = msg
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
		Data: FormInput{
			Name:    sanitize(name),
			Date:    sanitize(date),
			Email:   sanitize(email),
			Cell:    sanitize(cell),
			Message: sanitize(message),
		},
	}
}

func validateName(name string) string {
	switch n := charCount(name); {
	case n == 0:
		return MsgNameRequired
	case n < minNameLength:
		return MsgNameTooShort
	case n > maxNameLength:
		return MsgNameTooLong
	}
	return ""
}

func validateDate(date string) string {
	if date == "" {
		return MsgDateRequired
	}
	if !dateRegex.MatchString(date) {
		return MsgDateInvalid
	}
	return ""
}

func validateEmail(email string) string {
	if email == "" {
		return MsgEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return MsgEmailInvalid
	}
	return ""
}

func validateCell(cell string) string {
	if cell == "" {
		return MsgCellRequired
	}
	if !cellRegex.MatchString(cell) {
		return MsgCellInvalid
	}
	return ""
}

func validateMessage(message string) string {
	switch n := charCount(message); {
	case n == 0:
		return MsgMessageRequired
	case n < minMessageLength:
		return MsgMessageTooShort
	case n > maxMessageLength:
		return MsgMessageTooLong
	}
	return ""
}

// isSpace reports whether r belongs to whitespaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// trim strips leading and trailing whitespace as a browser's trim() does.
func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// charCount counts characters of the NFC form so precomposed and combining
// spellings of the same text measure the same.
func charCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
