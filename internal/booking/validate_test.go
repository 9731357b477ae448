package booking

import (
	"reflect"
	"strings"
	"testing"
)

func validInput() FormInput {
	return FormInput{
		Name:    "Ana López",
		Date:    "2024-01-05",
		Email:   "ana@example.com",
		Cell:    "+52 (449) 102-8878",
		Message: "Quiero reservar un lugar para dos personas.",
	}
}

func TestValidate_ValidInput(t *testing.T) {
	result := Validate(validInput())

	if !result.Valid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if result.Data != validInput() {
		t.Fatalf("plain input should come back unchanged, got %+v", result.Data)
	}
}

func TestValidate_SingleFieldFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FormInput)
		field   string
		wantMsg string
	}{
		{"name empty", func(f *FormInput) { f.Name = "   " }, FieldName, MsgNameRequired},
		{"name one char", func(f *FormInput) { f.Name = "A" }, FieldName, MsgNameTooShort},
		{"name one char after bom", func(f *FormInput) { f.Name = "\ufeffA" }, FieldName, MsgNameTooShort},
		{"name only nbsp", func(f *FormInput) { f.Name = "\u00a0\u00a0" }, FieldName, MsgNameRequired},
		{"name too long", func(f *FormInput) { f.Name = strings.Repeat("a", 101) }, FieldName, MsgNameTooLong},
		{"date empty", func(f *FormInput) { f.Date = "" }, FieldDate, MsgDateRequired},
		{"date slashes", func(f *FormInput) { f.Date = "05/01/2024" }, FieldDate, MsgDateInvalid},
		{"date unpadded", func(f *FormInput) { f.Date = "2024-1-5" }, FieldDate, MsgDateInvalid},
		{"email empty", func(f *FormInput) { f.Email = "" }, FieldEmail, MsgEmailRequired},
		{"email no dot", func(f *FormInput) { f.Email = "ana@example" }, FieldEmail, MsgEmailInvalid},
		{"email with space", func(f *FormInput) { f.Email = "a na@example.com" }, FieldEmail, MsgEmailInvalid},
		{"email with nbsp", func(f *FormInput) { f.Email = "ana\u00a0x@example.com" }, FieldEmail, MsgEmailInvalid},
		{"email with ideographic space", func(f *FormInput) { f.Email = "ana@exam\u3000ple.com" }, FieldEmail, MsgEmailInvalid},
		{"cell empty", func(f *FormInput) { f.Cell = "\t" }, FieldCell, MsgCellRequired},
		{"cell letters", func(f *FormInput) { f.Cell = "449-ABC" }, FieldCell, MsgCellInvalid},
		{"message empty", func(f *FormInput) { f.Message = "" }, FieldMessage, MsgMessageRequired},
		{"message nine chars", func(f *FormInput) { f.Message = "123456789" }, FieldMessage, MsgMessageTooShort},
		{"message padded with separators", func(f *FormInput) { f.Message = "\u2028123456789\u2029" }, FieldMessage, MsgMessageTooShort},
		{"message too long", func(f *FormInput) { f.Message = strings.Repeat("m", 1001) }, FieldMessage, MsgMessageTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			result := Validate(in)
			if result.Valid {
				t.Fatal("expected invalid")
			}
			if len(result.Errors) != 1 {
				t.Fatalf("expected exactly one error, got %v", result.Errors)
			}
			if got := result.Errors.Get(tt.field); got != tt.wantMsg {
				t.Fatalf("%s error = %q, want %q", tt.field, got, tt.wantMsg)
			}
		})
	}
}

func TestValidate_AllEmpty(t *testing.T) {
	result := Validate(FormInput{})

	want := []string{FieldName, FieldDate, FieldEmail, FieldCell, FieldMessage}
	got := result.Errors.Fields()
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fields = %v, want %v", got, want)
		}
	}
}

func TestValidate_LengthBoundaries(t *testing.T) {
	in := validInput()
	in.Name = "Al"
	in.Message = "1234567890"
	if result := Validate(in); !result.Valid {
		t.Fatalf("minimum lengths should pass, got %v", result.Errors)
	}

	in.Name = strings.Repeat("ñ", 100)
	in.Message = strings.Repeat("é", 1000)
	if result := Validate(in); !result.Valid {
		t.Fatalf("maximum lengths should pass, got %v", result.Errors)
	}
}

func TestValidate_CountsComposedCharacters(t *testing.T) {
	in := validInput()
	// "e" followed by a combining acute accent is a single character.
	in.Name = "e\u0301"

	result := Validate(in)
	if got := result.Errors.Get(FieldName); got != MsgNameTooShort {
		t.Fatalf("name error = %q, want %q", got, MsgNameTooShort)
	}
}

func TestValidate_TrimsAndEscapesData(t *testing.T) {
	in := validInput()
	in.Name = "  <b>Ana</b> & 'Luis'  "

	result := Validate(in)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", result.Errors)
	}
	want := "&lt;b&gt;Ana&lt;/b&gt; &amp; &#039;Luis&#039;"
	if result.Data.Name != want {
		t.Fatalf("name = %q, want %q", result.Data.Name, want)
	}
}

func TestValidate_TrimmedInputIsEquivalent(t *testing.T) {
	padded := validInput()
	padded.Name = "\n" + padded.Name + "  "
	padded.Email = " " + padded.Email

	if got, want := Validate(padded), Validate(validInput()); got.Data != want.Data || got.Valid != want.Valid {
		t.Fatalf("padded = %+v, trimmed = %+v", got, want)
	}
}

func TestValidate_UnicodeWhitespace(t *testing.T) {
	in := validInput()
	in.Cell = "449\u00a0102\u00a08878"
	in.Email = "\ufeffana@example.com\u00a0"
	in.Date = "\u20032024-01-05"

	result := Validate(in)
	if !result.Valid {
		t.Fatalf("expected valid, got %v", result.Errors)
	}
	if result.Data.Email != "ana@example.com" || result.Data.Date != "2024-01-05" {
		t.Fatalf("expected unicode whitespace trimmed, got %+v", result.Data)
	}
	if result.Data.Cell != in.Cell {
		t.Fatalf("inner spaces should be kept, got %q", result.Data.Cell)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	invalid := validInput()
	invalid.Email = "ana@"
	invalid.Message = "corto"

	for _, in := range []FormInput{validInput(), invalid, {}} {
		first := Validate(in)
		second := Validate(in)

		if first.Valid != second.Valid {
			t.Fatalf("Valid differs for %+v: %v vs %v", in, first.Valid, second.Valid)
		}
		if !reflect.DeepEqual(first.Data, second.Data) {
			t.Fatalf("Data differs for %+v: %+v vs %+v", in, first.Data, second.Data)
		}
		if !reflect.DeepEqual(first.Errors, second.Errors) {
			t.Fatalf("Errors differ for %+v: %v vs %v", in, first.Errors, second.Errors)
		}
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{FieldMessage: "m", "zz": "z", FieldName: "n", "aa": "a"}

	if !errs.Has(FieldName) || errs.Has(FieldEmail) {
		t.Fatalf("Has returned wrong results for %v", errs)
	}
	if errs.Get(FieldCell) != "" {
		t.Fatal("expected empty message for passing field")
	}

	want := "invalid booking form: name: n; message: m; aa: a; zz: z"
	if got := errs.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestFormInput_Value(t *testing.T) {
	in := validInput()
	for _, field := range fieldOrder {
		if in.Value(field) == "" {
			t.Fatalf("Value(%q) returned empty", field)
		}
	}
	if in.Value("unknown") != "" {
		t.Fatal("unknown field should be empty")
	}
}
