// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/bookingcard/internal/api"
	"github.com/codr1/bookingcard/internal/api/bookingform"
	"github.com/codr1/bookingcard/internal/booking"
	"github.com/codr1/bookingcard/internal/config"
	"github.com/codr1/bookingcard/internal/deeplink"
	"github.com/codr1/bookingcard/internal/ratelimit"
	bookingformtpl "github.com/codr1/bookingcard/internal/templates/components/bookingform"
	"github.com/codr1/bookingcard/internal/templates/layouts"
)

// app holds the long-lived pieces built from configuration.
type app struct {
	submitter *booking.Submitter
	limiter   *ratelimit.Limiter
}

func newApp(cfg *config.Config) (*app, error) {
	catalog, err := booking.NewCatalog(cfg.Booking.Services)
	if err != nil {
		return nil, fmt.Errorf("build service catalog: %w", err)
	}

	composer, err := booking.NewComposer(booking.ComposerConfig{
		QuantityFormat:  booking.QuantityFormat(cfg.Booking.QuantityFormat),
		DateSource:      booking.DateSource(cfg.Booking.DateSource),
		IncludeServices: cfg.Booking.IncludeServices,
		Catalog:         catalog,
	})
	if err != nil {
		return nil, fmt.Errorf("build composer: %w", err)
	}

	recipient, err := deeplink.NormalizeRecipient(cfg.WhatsApp.Recipient, cfg.WhatsApp.DefaultRegion)
	if err != nil {
		return nil, fmt.Errorf("whatsapp recipient: %w", err)
	}
	mailto, err := deeplink.NewMailto(cfg.Mail.To, cfg.Mail.Cc)
	if err != nil {
		return nil, fmt.Errorf("mail recipients: %w", err)
	}

	log.Info().
		Str("whatsapp", deeplink.MaskRecipient(recipient)).
		Int("mail_to", len(mailto.To)).
		Int("services", catalog.Len()).
		Str("date_source", cfg.Booking.DateSource).
		Msg("Booking card configured")

	submitter := booking.NewSubmitter(composer, map[booking.Channel]booking.Sink{
		booking.ChannelWhatsApp: deeplink.WhatsAppSink{
			Target:     deeplink.WhatsApp{BaseURL: cfg.WhatsApp.BaseURL, Recipient: recipient},
			NoticeText: cfg.WhatsApp.Notice,
		},
		booking.ChannelEmail: deeplink.MailtoSink{
			Target:     mailto,
			NoticeText: cfg.Mail.Notice,
		},
	})

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(&ratelimit.Config{
			SubmitCooldown:   cfg.RateLimit.SubmitCooldown,
			SubmitMaxPerHour: cfg.RateLimit.MaxPerHour,
		})
	}

	return &app{submitter: submitter, limiter: limiter}, nil
}

func newServer(cfg *config.Config, a *app) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	bookingform.InitHandlers(a.submitter, a.limiter, bookingform.Settings{
		Title: cfg.App.Name,
		Theme: layouts.Theme{
			PrimaryColor:   cfg.Theme.PrimaryColor,
			SecondaryColor: cfg.Theme.SecondaryColor,
			AccentColor:    cfg.Theme.AccentColor,
			ErrorColor:     cfg.Theme.ErrorColor,
		},
		NoticeTimeout: cfg.Booking.NoticeTimeout,
		TrustProxy:    cfg.RateLimit.TrustProxy,
	})

	registerRoutes(router, cfg.App.StaticDir)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, staticDir string) {
	// Main page handler
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		bookingform.HandleBookingPage(w, r)
	})
	mux.HandleFunc("/booking", bookingform.HandleBookingPage)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Booking routes
	mux.HandleFunc(bookingformtpl.WhatsAppAction, bookingform.HandleWhatsApp)
	mux.HandleFunc(bookingformtpl.EmailAction, bookingform.HandleEmail)

	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
