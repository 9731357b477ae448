// Package booking holds the booking card's form validation and message
// composition. Nothing in here touches HTTP or HTML rendering; callers
// present results through the Presenter interface.
package booking

// Form field names. They double as the keys of FieldErrors and as the HTML
// input names.
const (
	FieldName    = "name"
	FieldDate    = "date"
	FieldEmail   = "email"
	FieldCell    = "cell"
	FieldMessage = "message"
)

// fieldOrder is the order fields appear on the card.
var fieldOrder = []string{FieldName, FieldDate, FieldEmail, FieldCell, FieldMessage}

// DateLayout is the YYYY-MM-DD layout used by the date input.
const DateLayout = "2006-01-02"

// FormInput is the raw text of the five booking fields, re-read on every
// submit attempt.
type FormInput struct {
	Name    string
	Date    string
	Email   string
	Cell    string
	Message string
}

// Value returns the value for a field name, or "" for unknown names.
func (f FormInput) Value(field string) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldDate:
		return f.Date
	case FieldEmail:
		return f.Email
	case FieldCell:
		return f.Cell
	case FieldMessage:
		return f.Message
	}
	return ""
}

// ServiceSelection is a checked catalog item and the quantity typed for it.
// Quantity <= 0 means "not provided".
type ServiceSelection struct {
	ID       string
	Quantity int
}

// Submission is everything the card posts: the text fields plus the
// checked services.
type Submission struct {
	Input    FormInput
	Services []ServiceSelection
}
