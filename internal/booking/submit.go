package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Channel names an outbound link sink.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

var ErrUnknownChannel = errors.New("unknown booking channel")

// Presenter is how the core talks back to whatever renders the card.
type Presenter interface {
	// ClearFieldErrors removes every field error currently shown.
	ClearFieldErrors()
	// ShowFieldError places message next to field's input.
	ShowFieldError(field, message string)
	// Notify shows a short-lived notice.
	Notify(message string)
	// Reset puts the fields back to defaults after a dispatch.
	Reset(defaults FormInput)
}

// Sink turns a composed message into a deep link for one channel.
type Sink interface {
	Link(msg Message) (string, error)
	// Notice is shown while the external app opens.
	Notice() string
}

// Dispatch is the outcome of a successful submit.
type Dispatch struct {
	Channel Channel
	URL     string
	Message Message
}

// Submitter runs the single submit pipeline shared by every channel:
// validate, compose, link, notify, reset.
type Submitter struct {
	composer *Composer
	sinks    map[Channel]Sink
}

// NewSubmitter wires a composer to the channels it may dispatch to.
func NewSubmitter(composer *Composer, sinks map[Channel]Sink) *Submitter {
	registered := make(map[Channel]Sink, len(sinks))
	for ch, sink := range sinks {
		if sink != nil {
			registered[ch] = sink
		}
	}
	return &Submitter{composer: composer, sinks: registered}
}

// Composer returns the composer the submitter formats messages with.
func (s *Submitter) Composer() *Composer {
	return s.composer
}

// Defaults are the field values the card starts with and returns to after a
// dispatch.
func (s *Submitter) Defaults() FormInput {
	return FormInput{Date: s.composer.Today()}
}

// Submit validates sub and, if it passes, builds the deep link for channel.
// A validation failure returns the FieldErrors as the error after showing
// them through p; nothing is dispatched in that case.
func (s *Submitter) Submit(ctx context.Context, channel Channel, sub Submission, p Presenter) (*Dispatch, error) {
	logger := log.Ctx(ctx)

	sink, ok := s.sinks[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}

	p.ClearFieldErrors()
	result := Validate(sub.Input)
	if !result.Valid {
		for _, field := range result.Errors.Fields() {
			p.ShowFieldError(field, result.Errors.Get(field))
		}
		logger.Debug().
			Str("channel", string(channel)).
			Strs("fields", result.Errors.Fields()).
			Msg("Booking form rejected")
		return nil, result.Errors
	}

	msg := s.composer.Compose(plainText(result.Data), sub.Services)
	url, err := sink.Link(msg)
	if err != nil {
		return nil, fmt.Errorf("build %s link: %w", channel, err)
	}

	p.Notify(sink.Notice())
	p.Reset(s.Defaults())

	logger.Info().
		Str("channel", string(channel)).
		Int("services", len(msg.RequiredServices)).
		Msg("Booking dispatched")

	return &Dispatch{Channel: channel, URL: url, Message: msg}, nil
}

// plainText undoes the HTML escaping of validated data; link sinks carry
// plain text and percent-encode it themselves.
func plainText(data FormInput) FormInput {
	return FormInput{
		Name:    UnescapeHTML(data.Name),
		Date:    UnescapeHTML(data.Date),
		Email:   UnescapeHTML(data.Email),
		Cell:    UnescapeHTML(data.Cell),
		Message: UnescapeHTML(data.Message),
	}
}
