package locale

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed lang/*.lang
var builtin embed.FS

// localeData represents a mapping of translation keys to their respective values for a specific language.
type localeData map[string]string

var (
	mu sync.RWMutex
	// locales holds all registered locale data keyed by language tag.
	locales = make(map[language.Tag]localeData)
)

// init registers the built-in English translations so labels resolve without any files on disk.
func init() {
	f, err := builtin.Open("lang/en.lang")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	data, err := parse(f)
	if err != nil {
		panic(err)
	}
	locales[language.English] = data
}

// Register loads <dir>/<lang>.lang and merges it over the translations already
// registered for lang. Keys absent from the file keep their previous value.
// The language file should be in the format "key=value".
func Register(lang language.Tag, dir string) error {
	file, err := os.Open(filepath.Join(dir, lang.String()+".lang"))
	if err != nil {
		return fmt.Errorf("could not open lang file: %w", err)
	}
	defer file.Close()

	data, err := parse(file)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	merged := make(localeData, len(locales[lang])+len(data))
	for k, v := range locales[lang] {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	locales[lang] = merged
	return nil
}

// parse reads "key=value" lines, skipping blanks and # comments.
func parse(r io.Reader) (localeData, error) {
	data := make(localeData)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) < 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		data[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading lang file: %w", err)
	}
	return data, nil
}

// Translate translates a key to the default language (English) and formats it with the provided arguments.
func Translate(key string, args ...any) string {
	return TranslateL(language.English, key, args...)
}

// TranslateL translates a key to a specified language and formats it with the provided arguments.
// If the language or the key is unavailable, it falls back to the English translation.
// Placeholders %1, %2, ... are replaced by the arguments in order.
func TranslateL(lang language.Tag, key string, args ...any) string {
	mu.RLock()
	translation, ok := locales[lang][key]
	if !ok {
		translation, ok = locales[language.English][key]
	}
	mu.RUnlock()

	if !ok {
		return fmt.Sprintf("missing translation for '%s'", key)
	}

	// Single pass, highest index first, so %1 never clobbers %10 and argument text is never re-expanded.
	pairs := make([]string, 0, len(args)*2)
	for i := len(args) - 1; i >= 0; i-- {
		pairs = append(pairs, fmt.Sprintf("%%%d", i+1), fmt.Sprintf("%v", args[i]))
	}
	if len(pairs) > 0 {
		translation = strings.NewReplacer(pairs...).Replace(translation)
	}
	return translation
}
