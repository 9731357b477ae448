package deeplink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultWhatsAppBaseURL is the click-to-chat endpoint.
const DefaultWhatsAppBaseURL = "https://wa.me/"

// Bare-digit recipients in this range already include a country code. E.164
// numbers are at most 15 digits.
const (
	minInternationalDigits = 11
	maxInternationalDigits = 15
)

var ErrInvalidRecipient = errors.New("invalid whatsapp recipient")

// WhatsApp builds click-to-chat links. An empty Recipient opens WhatsApp
// and lets the user pick the contact.
type WhatsApp struct {
	BaseURL string
	// Recipient is the international number as digits only, no "+".
	Recipient string
}

// Link returns the click-to-chat URL with text prefilled.
func (w WhatsApp) Link(text string) string {
	base := w.BaseURL
	if base == "" {
		base = DefaultWhatsAppBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + w.Recipient + "?text=" + EncodeURIComponent(text)
}

// NormalizeRecipient returns the E.164 digits of raw without the "+".
// A value of 11 to 15 bare digits is taken as already carrying its country
// code and kept verbatim. Anything else is parsed with phonenumbers in
// defaultRegion (ISO 3166 code, used when raw has no "+" prefix). Blank input
// yields "".
func NormalizeRecipient(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if isInternationalDigits(raw) {
		return raw, nil
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(strings.TrimSpace(defaultRegion)))
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidRecipient, raw, err)
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, raw)
	}

	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), nil
}

func isInternationalDigits(s string) bool {
	if len(s) < minInternationalDigits || len(s) > maxInternationalDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaskRecipient hides all but the last four digits for logging.
func MaskRecipient(recipient string) string {
	if len(recipient) >= 4 {
		return "***" + recipient[len(recipient)-4:]
	}
	return "***"
}
