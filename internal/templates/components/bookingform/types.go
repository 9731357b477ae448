package bookingform

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/codr1/bookingcard/internal/booking"
)

// Routes the card posts to.
const (
	WhatsAppAction = "/api/v1/booking/whatsapp"
	EmailAction    = "/api/v1/booking/email"
)

// OpenLinkEvent is the htmx event whose detail.url the page opens in a new
// tab after a dispatch.
const OpenLinkEvent = "booking:open"

const defaultNoticeTimeoutMs = 3000

type cardField struct {
	name      string
	label     string
	inputType string
}

// ID is the element id of the field's input.
func (f cardField) ID() string {
	return "br-" + f.name
}

var cardFields = []cardField{
	{booking.FieldName, "Nombre", "text"},
	{booking.FieldDate, "Fecha", "date"},
	{booking.FieldEmail, "Email", "email"},
	{booking.FieldCell, "Cel", "tel"},
	{booking.FieldMessage, "Mensaje", "textarea"},
}

// ServiceRow is one catalog entry as shown on the card.
type ServiceRow struct {
	Item     booking.ServiceItem
	Checked  bool
	Quantity int
}

// CardData is the state of the booking card. It implements
// booking.Presenter so the submit pipeline can drive it directly.
type CardData struct {
	Input            booking.FormInput
	Errors           booking.FieldErrors
	Services         []ServiceRow
	RequiredServices []string
	Notice           string
	NoticeTimeout    time.Duration

	catalog *booking.Catalog
}

var _ booking.Presenter = (*CardData)(nil)

// NewCardData builds the card for input with the given services checked.
func NewCardData(catalog *booking.Catalog, input booking.FormInput, selected []booking.ServiceSelection) *CardData {
	d := &CardData{
		Input:   input,
		Errors:  booking.FieldErrors{},
		catalog: catalog,
	}
	d.setServices(selected)
	return d
}

func (d *CardData) setServices(selected []booking.ServiceSelection) {
	qty := make(map[string]int, len(selected))
	for _, sel := range selected {
		qty[sel.ID] = sel.Quantity
	}

	items := d.catalog.Items()
	d.Services = make([]ServiceRow, len(items))
	for i, item := range items {
		row := ServiceRow{Item: item, Quantity: item.InitialQuantity()}
		if n, ok := qty[item.ID]; ok {
			row.Checked = true
			if n > 0 {
				row.Quantity = n
			}
		}
		d.Services[i] = row
	}
}

func (d *CardData) ClearFieldErrors() {
	d.Errors = booking.FieldErrors{}
}

func (d *CardData) ShowFieldError(field, message string) {
	if d.Errors == nil {
		d.Errors = booking.FieldErrors{}
	}
	d.Errors[field] = message
}

func (d *CardData) Notify(message string) {
	d.Notice = message
}

// Reset clears the text fields to defaults and re-checks the default
// services. The service preview is cleared too.
func (d *CardData) Reset(defaults booking.FormInput) {
	d.Input = defaults
	d.RequiredServices = nil
	d.setServices(d.catalog.DefaultSelections())
}

// NoticeTimeoutMs is the notice lifetime for the data-timeout-ms attribute.
func (d *CardData) NoticeTimeoutMs() string {
	if d.NoticeTimeout > 0 {
		return strconv.FormatInt(d.NoticeTimeout.Milliseconds(), 10)
	}
	return strconv.Itoa(defaultNoticeTimeoutMs)
}

// ServicesPreview renders RequiredServices as the JSON shown under the card.
func (d *CardData) ServicesPreview() (string, error) {
	preview, err := json.MarshalIndent(struct {
		RequiredServices []string `json:"required_services"`
	}{d.RequiredServices}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(preview), nil
}
