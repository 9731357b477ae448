package deeplink

import (
	"github.com/codr1/bookingcard/internal/booking"
)

// WhatsAppSink sends the composed body as the chat text.
type WhatsAppSink struct {
	Target     WhatsApp
	NoticeText string
}

func (s WhatsAppSink) Link(msg booking.Message) (string, error) {
	return s.Target.Link(msg.Body), nil
}

func (s WhatsAppSink) Notice() string { return s.NoticeText }

// MailtoSink opens the visitor's mail client with subject and body filled.
type MailtoSink struct {
	Target     Mailto
	NoticeText string
}

func (s MailtoSink) Link(msg booking.Message) (string, error) {
	return s.Target.Link(msg.Subject, msg.Body)
}

func (s MailtoSink) Notice() string { return s.NoticeText }

var (
	_ booking.Sink = WhatsAppSink{}
	_ booking.Sink = MailtoSink{}
)
