package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuantityFormat controls how a quantity above one is written into a
// service label. The receiving side only accepts plain strings.
type QuantityFormat string

const (
	QuantitySuffix QuantityFormat = "suffix" // "asador (x2)"
	QuantityPrefix QuantityFormat = "prefix" // "2 asador"
)

// DateSource picks which date ends up in the composed message.
type DateSource string

const (
	// DateSourceNow stamps the message with the composition date and ignores
	// the date the visitor typed.
	DateSourceNow DateSource = "now"
	// DateSourceForm uses the validated date field.
	DateSourceForm DateSource = "form"
)

const (
	fallbackName    = "(sin nombre)"
	fallbackDate    = "(sin fecha)"
	fallbackEmail   = "(sin email)"
	fallbackCell    = "(sin cel)"
	fallbackSubject = "booking"
)

var (
	ErrUnknownQuantityFormat = errors.New("unknown quantity format")
	ErrUnknownDateSource     = errors.New("unknown date source")
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type localClock struct{}

func (localClock) Now() time.Time { return time.Now() }

// ComposerConfig is fixed at construction time.
type ComposerConfig struct {
	QuantityFormat  QuantityFormat
	DateSource      DateSource
	IncludeServices bool
	Catalog         *Catalog
	// Clock for testing (nil uses local wall time)
	Clock Clock
}

// Message is a composed booking request ready for a link sink.
type Message struct {
	Subject string
	Body    string
	// RequiredServices are the quantity-encoded labels of checked services.
	RequiredServices []string
}

// Composer turns validated form data into the subject and body text.
type Composer struct {
	format          QuantityFormat
	dateSource      DateSource
	includeServices bool
	catalog         *Catalog
	clock           Clock
}

// NewComposer applies defaults (suffix, now, empty catalog, local clock) and
// rejects unknown modes.
func NewComposer(cfg ComposerConfig) (*Composer, error) {
	format := cfg.QuantityFormat
	if format == "" {
		format = QuantitySuffix
	}
	if format != QuantitySuffix && format != QuantityPrefix {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuantityFormat, format)
	}

	source := cfg.DateSource
	if source == "" {
		source = DateSourceNow
	}
	if source != DateSourceNow && source != DateSourceForm {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDateSource, source)
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = &Catalog{byID: map[string]int{}}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = localClock{}
	}

	return &Composer{
		format:          format,
		dateSource:      source,
		includeServices: cfg.IncludeServices,
		catalog:         catalog,
		clock:           clock,
	}, nil
}

// Catalog returns the service catalog the composer encodes against.
func (c *Composer) Catalog() *Catalog {
	return c.catalog
}

// Today is the clock's current date in DateLayout.
func (c *Composer) Today() string {
	return c.clock.Now().Format(DateLayout)
}

// Compose builds the subject, body and service list for data. The date is
// resolved once so subject and body always agree.
func (c *Composer) Compose(data FormInput, services []ServiceSelection) Message {
	data.Date = c.resolveDate(data.Date)
	labels := c.ServiceLabels(services)

	body := c.body(data)
	if c.includeServices && len(labels) > 0 {
		var b strings.Builder
		b.WriteString(body)
		b.WriteString("Servicios:\n")
		for _, label := range labels {
			b.WriteString("- ")
			b.WriteString(label)
			b.WriteString("\n")
		}
		body = b.String()
	}

	return Message{
		Subject:          c.Subject(data.Date, data.Name),
		Body:             body,
		RequiredServices: labels,
	}
}

// Body renders the five-line contact block followed by a blank line. The
// date line follows the composer's DateSource like Compose does.
func (c *Composer) Body(data FormInput) string {
	data.Date = c.resolveDate(data.Date)
	return c.body(data)
}

// body renders data with its date already resolved.
func (c *Composer) body(data FormInput) string {
	return "Nombre: " + orFallback(data.Name, fallbackName) + "\n" +
		"Fecha: " + orFallback(data.Date, fallbackDate) + "\n" +
		"Email: " + orFallback(data.Email, fallbackEmail) + "\n" +
		"Cel: " + orFallback(data.Cell, fallbackCell) + "\n" +
		"Mensaje: " + trim(data.Message) + "\n\n"
}

// Subject renders "<date> | Contacto - <name>".
func (c *Composer) Subject(date, name string) string {
	return trim(date) + " | Contacto - " + orFallback(name, fallbackSubject)
}

// FormatServiceLabel encodes qty into label. Quantities of one or less leave
// the label untouched.
func (c *Composer) FormatServiceLabel(label string, qty int) string {
	return FormatServiceLabel(c.format, label, qty)
}

// ServiceLabels returns the encoded labels of the selected services in
// catalog order. Unknown IDs are dropped and a service without a quantity
// input always counts once.
func (c *Composer) ServiceLabels(selections []ServiceSelection) []string {
	if len(selections) == 0 {
		return nil
	}
	qty := make(map[string]int, len(selections))
	for _, sel := range selections {
		qty[strings.TrimSpace(sel.ID)] = sel.Quantity
	}

	var labels []string
	for _, item := range c.catalog.items {
		n, ok := qty[item.ID]
		if !ok {
			continue
		}
		switch {
		case !item.ShowQuantity:
			n = 1
		case n <= 0:
			n = item.InitialQuantity()
		}
		labels = append(labels, c.FormatServiceLabel(item.Label, n))
	}
	return labels
}

func (c *Composer) resolveDate(formDate string) string {
	if c.dateSource == DateSourceForm {
		return trim(formDate)
	}
	return c.Today()
}

// FormatServiceLabel is the stateless form of Composer.FormatServiceLabel.
// An unknown format falls back to suffix.
func FormatServiceLabel(format QuantityFormat, label string, qty int) string {
	if qty <= 1 {
		return label
	}
	n := strconv.Itoa(qty)
	if format == QuantityPrefix {
		return n + " " + label
	}
	return label + " (x" + n + ")"
}

func orFallback(value, fallback string) string {
	if v := trim(value); v != "" {
		return v
	}
	return fallback
}
