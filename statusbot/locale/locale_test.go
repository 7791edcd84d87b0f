package locale

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
)

func TestTranslate_Builtin(t *testing.T) {
	if got := Translate("presence.known", 2, 10, "procedural"); got != "2/10 - procedural" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := Translate("presence.unknown"); got != `¯\_(ツ)_/¯ server not found` {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestTranslate_Missing(t *testing.T) {
	if got := Translate("does.not.exist"); got != "missing translation for 'does.not.exist'" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestTranslateL_FallsBackToEnglish(t *testing.T) {
	if got := TranslateL(language.German, "presence.known", 1, 2, "x"); got != "1/2 - x" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestRegister_MergesOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\n\nbroken line\npresence.unknown = Server offline\n"
	if err := os.WriteFile(filepath.Join(dir, "de.lang"), []byte(content), 0o644); err != nil {
		t.Fatalf("write err=%v", err)
	}

	if err := Register(language.German, dir); err != nil {
		t.Fatalf("Register err=%v", err)
	}
	if got := TranslateL(language.German, "presence.unknown"); got != "Server offline" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := TranslateL(language.German, "presence.known", 3, 4, "m"); got != "3/4 - m" {
		t.Fatalf("expected english fallback, got %q", got)
	}
}

func TestRegister_MissingFile(t *testing.T) {
	if err := Register(language.French, t.TempDir()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestTranslate_ArgumentsAreNotReexpanded(t *testing.T) {
	if got := Translate("presence.known", 1, 2, "%1 map"); got != "1/2 - %1 map" {
		t.Fatalf("unexpected label %q", got)
	}
}
