// internal/api/bookingform/handlers.go
package bookingform

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/bookingcard/internal/api/htmx"
	"github.com/codr1/bookingcard/internal/booking"
	"github.com/codr1/bookingcard/internal/ratelimit"
	"github.com/codr1/bookingcard/internal/templates/components/bookingform"
	"github.com/codr1/bookingcard/internal/templates/layouts"
)

const rateLimitedNotice = "Demasiados envíos, intenta de nuevo más tarde."

// Settings are the presentation knobs of the booking page.
type Settings struct {
	Title         string
	Theme         layouts.Theme
	NoticeTimeout time.Duration
	TrustProxy    bool
}

var (
	submitter *booking.Submitter
	limiter   *ratelimit.Limiter
	settings  Settings
)

// InitHandlers wires the handlers. A nil limiter disables rate limiting.
func InitHandlers(s *booking.Submitter, l *ratelimit.Limiter, cfg Settings) {
	submitter = s
	limiter = l
	settings = cfg
}

// HandleBookingPage renders an empty card with today's date and the default
// services checked.
func HandleBookingPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog := submitter.Composer().Catalog()
	data := bookingform.NewCardData(catalog, submitter.Defaults(), catalog.DefaultSelections())
	data.NoticeTimeout = settings.NoticeTimeout

	render(w, r, http.StatusOK, data)
}

// HandleWhatsApp validates the card and redirects to WhatsApp.
func HandleWhatsApp(w http.ResponseWriter, r *http.Request) {
	handleSubmit(w, r, booking.ChannelWhatsApp)
}

// HandleEmail validates the card and redirects to the mail client.
func HandleEmail(w http.ResponseWriter, r *http.Request) {
	handleSubmit(w, r, booking.ChannelEmail)
}

func handleSubmit(w http.ResponseWriter, r *http.Request, channel booking.Channel) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		logger.Warn().Err(err).Msg("Failed to parse booking form")
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	sub := submissionFromForm(r)
	composer := submitter.Composer()
	data := bookingform.NewCardData(composer.Catalog(), sub.Input, sub.Services)
	data.NoticeTimeout = settings.NoticeTimeout

	var reservation *ratelimit.Reservation
	if limiter != nil {
		ip := ratelimit.GetClientIP(r, settings.TrustProxy)
		result, res := limiter.ReserveSubmit(ip)
		if !result.Allowed {
			ratelimit.LogRateLimitExceeded(ip, result.Reason, result.RetryAfter)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds()))))
			data.Notify(rateLimitedNotice)
			render(w, r, errorStatus(r, http.StatusTooManyRequests), data)
			return
		}
		reservation = res
	}

	dispatch, err := submitter.Submit(r.Context(), channel, sub, data)
	if err != nil {
		reservation.Cancel()

		var fieldErrs booking.FieldErrors
		if errors.As(err, &fieldErrs) {
			data.RequiredServices = composer.ServiceLabels(sub.Services)
			render(w, r, errorStatus(r, http.StatusUnprocessableEntity), data)
			return
		}
		logger.Error().Err(err).Str("channel", string(channel)).Msg("Failed to dispatch booking")
		http.Error(w, "Failed to build link", http.StatusInternalServerError)
		return
	}

	if htmx.IsRequest(r) {
		// The page opens the link in a new tab so the reset card and its
		// notice stay visible.
		if err := htmx.Trigger(w, bookingform.OpenLinkEvent, map[string]string{"url": dispatch.URL}); err != nil {
			logger.Error().Err(err).Msg("Failed to set link trigger")
		}
		render(w, r, http.StatusOK, data)
		return
	}
	http.Redirect(w, r, dispatch.URL, http.StatusSeeOther)
}

// errorStatus keeps htmx requests at 200 because htmx does not swap error
// responses; the card itself carries the errors.
func errorStatus(r *http.Request, status int) int {
	if htmx.IsRequest(r) {
		return http.StatusOK
	}
	return status
}

// submissionFromForm reads the card fields. Absent fields are empty strings
// and unparsable quantities count as not provided.
func submissionFromForm(r *http.Request) booking.Submission {
	sub := booking.Submission{
		Input: booking.FormInput{
			Name:    r.PostFormValue(booking.FieldName),
			Date:    r.PostFormValue(booking.FieldDate),
			Email:   r.PostFormValue(booking.FieldEmail),
			Cell:    r.PostFormValue(booking.FieldCell),
			Message: r.PostFormValue(booking.FieldMessage),
		},
	}

	seen := make(map[string]bool)
	for _, id := range r.PostForm["service"] {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("qty-" + id)))
		if err != nil {
			qty = 0
		}
		sub.Services = append(sub.Services, booking.ServiceSelection{ID: id, Quantity: qty})
	}
	return sub
}

// render writes the card alone for htmx swaps and the full page otherwise.
func render(w http.ResponseWriter, r *http.Request, status int, data *bookingform.CardData) {
	var component templ.Component = bookingform.Card(data)
	if !htmx.IsRequest(r) {
		component = layouts.Base(settings.Title, &settings.Theme, component)
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render booking card")
	}
}
