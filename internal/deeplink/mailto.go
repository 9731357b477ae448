package deeplink

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	ErrNoMailRecipient    = errors.New("at least one mail recipient is required")
	ErrInvalidMailAddress = errors.New("invalid mail address")
)

// Mailto builds mailto: links for the visitor's default mail client.
type Mailto struct {
	To []string
	Cc []string
}

// NewMailto validates every address. Each entry must be a bare address
// (no display name).
func NewMailto(to, cc []string) (Mailto, error) {
	m := Mailto{}
	for _, addr := range to {
		clean, err := parseAddress(addr)
		if err != nil {
			return Mailto{}, err
		}
		m.To = append(m.To, clean)
	}
	for _, addr := range cc {
		clean, err := parseAddress(addr)
		if err != nil {
			return Mailto{}, err
		}
		m.Cc = append(m.Cc, clean)
	}
	if len(m.To) == 0 {
		return Mailto{}, ErrNoMailRecipient
	}
	return m, nil
}

// Link returns mailto:<to>?cc=<cc>&subject=<subject>&body=<body>. Recipients
// are comma separated; cc is omitted when empty.
func (m Mailto) Link(subject, body string) (string, error) {
	if len(m.To) == 0 {
		return "", ErrNoMailRecipient
	}

	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(strings.Join(m.To, ","))
	b.WriteString("?")
	if len(m.Cc) > 0 {
		b.WriteString("cc=")
		b.WriteString(strings.Join(m.Cc, ","))
		b.WriteString("&")
	}
	b.WriteString("subject=")
	b.WriteString(EncodeURIComponent(subject))
	b.WriteString("&body=")
	b.WriteString(EncodeURIComponent(body))
	return b.String(), nil
}

func parseAddress(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return "", fmt.Errorf("%w: %q", ErrInvalidMailAddress, raw)
	}
	return addr.Address, nil
}
