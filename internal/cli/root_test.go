package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	modeltree "github.com/modeltree/modeltree"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFmtCanonicalForm(t *testing.T) {
	out, err := runCommand(t, "fmt", "a + 1 * 2")
	if err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	if got, want := strings.TrimSpace(out), "(a + (1 * 2))"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCheckAllowedFields(t *testing.T) {
	out, err := runCommand(t, "check", "--fields", "a,b", "a + b")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "2 field reference(s)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCheckUnknownField(t *testing.T) {
	_, err := runCommand(t, "check", "--fields", "a", "a + c")
	if err == nil {
		t.Fatal("expected an error for unknown field")
	}
	e, ok := modeltree.AsError(err)
	if !ok {
		t.Fatalf("expected *modeltree.Error, got %T", err)
	}
	if e.Code != modeltree.CodeUnknownField {
		t.Fatalf("got code %q, want %q", e.Code, modeltree.CodeUnknownField)
	}
}

func TestFmtParseError(t *testing.T) {
	_, err := runCommand(t, "fmt", "a +")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	e, ok := modeltree.AsError(err)
	if !ok {
		t.Fatalf("expected *modeltree.Error, got %T", err)
	}
	if e.Code != modeltree.CodeParseError {
		t.Fatalf("got code %q, want %q", e.Code, modeltree.CodeParseError)
	}
}

func TestInspectEmitsJSON(t *testing.T) {
	out, err := runCommand(t, "inspect", "price")
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !strings.Contains(out, `"operator":"FIELD"`) || !strings.Contains(out, `"name":"price"`) {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLoadOptionsFromEnv(t *testing.T) {
	t.Setenv("MODELTREE_LOCALE", "ja")
	t.Setenv("MODELTREE_FIELDS", "a, b,c")
	got, err := loadOptions(nil)
	if err != nil {
		t.Fatalf("loadOptions failed: %v", err)
	}
	if got.Locale != "ja" {
		t.Fatalf("got locale %q, want ja", got.Locale)
	}
	want := []string{"a", "b", "c"}
	if len(got.Fields) != len(want) {
		t.Fatalf("got fields %v, want %v", got.Fields, want)
	}
	for i := range want {
		if got.Fields[i] != want[i] {
			t.Fatalf("got fields %v, want %v", got.Fields, want)
		}
	}
}

func TestLoadOptionsFlagOverridesEnv(t *testing.T) {
	t.Setenv("MODELTREE_LOCALE", "ja")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("locale", "en", "")
	flags.StringSlice("fields", nil, "")
	flags.Bool("debug", false, "")
	if err := flags.Set("locale", "en"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	got, err := loadOptions(flags)
	if err != nil {
		t.Fatalf("loadOptions failed: %v", err)
	}
	if got.Locale != "en" {
		t.Fatalf("explicit flag must beat env, got %q", got.Locale)
	}
}

func TestCheckFieldsFromEnv(t *testing.T) {
	t.Setenv("MODELTREE_FIELDS", "a,b")
	out, err := runCommand(t, "check", "a + b")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "2 field reference(s)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	got, err := loadOptions(nil)
	if err != nil {
		t.Fatalf("loadOptions failed: %v", err)
	}
	if got.Locale != "en" {
		t.Fatalf("got locale %q, want en", got.Locale)
	}
	if len(got.Fields) != 0 {
		t.Fatalf("expected no default fields, got %v", got.Fields)
	}
	if got.Debug {
		t.Fatal("debug should default to false")
	}
}
