package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakePresenter struct {
	calls    []string
	errors   map[string]string
	notice   string
	defaults *FormInput
}

func (p *fakePresenter) ClearFieldErrors() {
	p.calls = append(p.calls, "clear")
	p.errors = map[string]string{}
}

func (p *fakePresenter) ShowFieldError(field, message string) {
	p.calls = append(p.calls, "error:"+field)
	p.errors[field] = message
}

func (p *fakePresenter) Notify(message string) {
	p.calls = append(p.calls, "notify")
	p.notice = message
}

func (p *fakePresenter) Reset(defaults FormInput) {
	p.calls = append(p.calls, "reset")
	p.defaults = &defaults
}

type fakeSink struct {
	last Message
	err  error
}

func (s *fakeSink) Link(msg Message) (string, error) {
	s.last = msg
	if s.err != nil {
		return "", s.err
	}
	return "test://" + msg.Subject, nil
}

func (s *fakeSink) Notice() string { return "Enviando..." }

func newTestSubmitter(t *testing.T, sink Sink) *Submitter {
	t.Helper()
	return NewSubmitter(newTestComposer(t, ComposerConfig{}), map[Channel]Sink{
		ChannelWhatsApp: sink,
		ChannelEmail:    nil,
	})
}

func TestSubmit_Success(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSubmitter(t, sink)
	p := &fakePresenter{}

	in := validInput()
	in.Name = "  Ana & Luis <3  "
	dispatch, err := s.Submit(context.Background(), ChannelWhatsApp, Submission{
		Input:    in,
		Services: []ServiceSelection{{ID: "carbon", Quantity: 2}},
	}, p)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if dispatch.Channel != ChannelWhatsApp || dispatch.URL != "test://2024-01-05 | Contacto - Ana & Luis <3" {
		t.Fatalf("unexpected dispatch: %+v", dispatch)
	}
	if !strings.HasPrefix(sink.last.Body, "Nombre: Ana & Luis <3\n") {
		t.Fatalf("body should carry plain text, got %q", sink.last.Body)
	}
	if len(dispatch.Message.RequiredServices) != 1 || dispatch.Message.RequiredServices[0] != "carbon (*) (x2)" {
		t.Fatalf("RequiredServices = %v", dispatch.Message.RequiredServices)
	}

	if got := strings.Join(p.calls, ","); got != "clear,notify,reset" {
		t.Fatalf("presenter calls = %s", got)
	}
	if p.notice != "Enviando..." {
		t.Fatalf("notice = %q", p.notice)
	}
	if p.defaults == nil || *p.defaults != (FormInput{Date: "2024-01-05"}) {
		t.Fatalf("reset defaults = %+v", p.defaults)
	}
}

func TestSubmit_ValidationFailure(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSubmitter(t, sink)
	p := &fakePresenter{}

	in := validInput()
	in.Email = ""
	in.Name = "A"
	dispatch, err := s.Submit(context.Background(), ChannelWhatsApp, Submission{Input: in}, p)

	if dispatch != nil {
		t.Fatalf("expected no dispatch, got %+v", dispatch)
	}
	var fieldErrs FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if len(fieldErrs) != 2 {
		t.Fatalf("expected two field errors, got %v", fieldErrs)
	}
	if got := strings.Join(p.calls, ","); got != "clear,error:name,error:email" {
		t.Fatalf("presenter calls = %s", got)
	}
	if p.errors[FieldEmail] != MsgEmailRequired {
		t.Fatalf("email message = %q", p.errors[FieldEmail])
	}
	if sink.last.Subject != "" {
		t.Fatal("sink must not be called for an invalid form")
	}
}

func TestSubmit_UnknownChannel(t *testing.T) {
	s := newTestSubmitter(t, &fakeSink{})
	p := &fakePresenter{}

	// A nil sink is not registered.
	_, err := s.Submit(context.Background(), ChannelEmail, Submission{Input: validInput()}, p)
	if !errors.Is(err, ErrUnknownChannel) {
		t.Fatalf("err = %v, want ErrUnknownChannel", err)
	}
	if len(p.calls) != 0 {
		t.Fatalf("presenter should not be touched, got %v", p.calls)
	}
}

func TestSubmit_LinkError(t *testing.T) {
	linkErr := errors.New("no recipient")
	s := newTestSubmitter(t, &fakeSink{err: linkErr})
	p := &fakePresenter{}

	_, err := s.Submit(context.Background(), ChannelWhatsApp, Submission{Input: validInput()}, p)
	if !errors.Is(err, linkErr) {
		t.Fatalf("err = %v, want wrapped link error", err)
	}
	if !strings.Contains(err.Error(), "build whatsapp link") {
		t.Fatalf("err = %q", err)
	}
	if got := strings.Join(p.calls, ","); got != "clear" {
		t.Fatalf("failed dispatch should not notify or reset, got %s", got)
	}
}

func TestSubmitter_Defaults(t *testing.T) {
	s := newTestSubmitter(t, &fakeSink{})
	if got := s.Defaults(); got != (FormInput{Date: "2024-01-05"}) {
		t.Fatalf("Defaults = %+v", got)
	}
	if s.Composer() == nil {
		t.Fatal("expected composer")
	}
}
