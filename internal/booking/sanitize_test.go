package booking

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`<a href="x">`, "&lt;a href=&quot;x&quot;&gt;"},
		{"Tom & Jerry's", "Tom &amp; Jerry&#039;s"},
		{"&amp;", "&amp;amp;"},
		{"`tick`", "`tick`"},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	if got, want := EscapeAttr("`x` & 'y'"), "&#096;x&#096; &amp; &#039;y&#039;"; got != want {
		t.Fatalf("EscapeAttr = %q, want %q", got, want)
	}
}

func TestUnescapeHTML_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Ana López",
		`<script>alert("x")</script>`,
		"a & b < c > d 'e' `f`",
		"&amp; already escaped",
	}

	for _, in := range inputs {
		if got := UnescapeHTML(EscapeHTML(in)); got != in {
			t.Errorf("html round trip of %q = %q", in, got)
		}
		if got := UnescapeHTML(EscapeAttr(in)); got != in {
			t.Errorf("attr round trip of %q = %q", in, got)
		}
	}
}

func TestSanitize_Trims(t *testing.T) {
	if got := sanitize("  <hola>  "); got != "&lt;hola&gt;" {
		t.Fatalf("sanitize = %q", got)
	}
}
