package bookingform

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/codr1/bookingcard/internal/booking"
)

func renderCard(t *testing.T, data *CardData) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Card(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render card: %v", err)
	}
	return buf.String()
}

func TestCard_DefaultState(t *testing.T) {
	catalog := booking.DefaultCatalog()
	data := NewCardData(catalog, booking.FormInput{Date: "2024-01-05"}, catalog.DefaultSelections())

	html := renderCard(t, data)

	if !strings.Contains(html, `name="date" type="date" value="2024-01-05"`) {
		t.Fatalf("expected date default, got %s", html)
	}
	if !strings.Contains(html, `value="agua-potable" checked`) {
		t.Fatalf("expected default checked service, got %s", html)
	}
	if strings.Contains(html, `value="anafre" checked`) {
		t.Fatalf("anafre should start unchecked")
	}
	if !strings.Contains(html, `name="qty-camastro"`) {
		t.Fatalf("expected quantity input for camastro")
	}
	if strings.Contains(html, `name="qty-anafre"`) {
		t.Fatalf("anafre has no quantity input")
	}
	if strings.Contains(html, "field-error") || strings.Contains(html, "notice-overlay") {
		t.Fatalf("fresh card should have no errors or notice")
	}
}

func TestCard_EscapesValuesAndShowsErrors(t *testing.T) {
	data := NewCardData(booking.DefaultCatalog(), booking.FormInput{Name: `<script>"x"</script>`}, nil)
	data.ShowFieldError(booking.FieldEmail, booking.MsgEmailRequired)

	html := renderCard(t, data)

	if strings.Contains(html, "<script>\"x\"") {
		t.Fatalf("raw value leaked into markup: %s", html)
	}
	if !strings.Contains(html, `&lt;script&gt;`) {
		t.Fatalf("expected escaped name, got %s", html)
	}
	if !strings.Contains(html, `<div class="field-error" data-field="email">El email es requerido</div>`) {
		t.Fatalf("expected email error, got %s", html)
	}
}

func TestCardData_PresenterLifecycle(t *testing.T) {
	catalog := booking.DefaultCatalog()
	data := NewCardData(catalog, booking.FormInput{Name: "Ana"}, []booking.ServiceSelection{{ID: "carbon", Quantity: 3}})
	data.NoticeTimeout = 1500 * time.Millisecond
	data.RequiredServices = []string{"carbon (*) (x3)"}

	data.ShowFieldError(booking.FieldName, "bad")
	data.ClearFieldErrors()
	if len(data.Errors) != 0 {
		t.Fatalf("expected errors cleared, got %v", data.Errors)
	}

	html := renderCard(t, data)
	if !strings.Contains(html, `name="qty-carbon" value="3"`) {
		t.Fatalf("expected typed quantity kept, got %s", html)
	}
	if !strings.Contains(html, `required_services`) {
		t.Fatalf("expected services preview")
	}

	data.Notify("Abriendo email...")
	data.Reset(booking.FormInput{Date: "2024-01-06"})

	if data.Input.Name != "" || data.Input.Date != "2024-01-06" {
		t.Fatalf("unexpected input after reset: %+v", data.Input)
	}
	if data.RequiredServices != nil {
		t.Fatalf("expected preview cleared after reset")
	}

	html = renderCard(t, data)
	if strings.Contains(html, `value="carbon" checked`) {
		t.Fatalf("carbon should be unchecked after reset")
	}
	if !strings.Contains(html, `data-timeout-ms="1500"`) {
		t.Fatalf("expected notice timeout, got %s", html)
	}
	if !strings.Contains(html, "Abriendo email...") {
		t.Fatalf("expected notice text")
	}
}

func TestCardData_PreviewAndTimeout(t *testing.T) {
	data := NewCardData(booking.DefaultCatalog(), booking.FormInput{}, nil)
	data.RequiredServices = []string{"agua-potable"}

	preview, err := data.ServicesPreview()
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	want := "{\n  \"required_services\": [\n    \"agua-potable\"\n  ]\n}"
	if preview != want {
		t.Fatalf("preview = %q, want %q", preview, want)
	}
	if got := data.NoticeTimeoutMs(); got != "3000" {
		t.Fatalf("default timeout = %q, want 3000", got)
	}
}
