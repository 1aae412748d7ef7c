// Package i18n handles localized user-facing strings.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goLocale "github.com/jeandeaual/go-locale"
	i18nLib "github.com/kaptinlin/go-i18n"
	"golang.org/x/text/language"
)

// testModeVariable makes T return keys instead of translations so tests do
// not depend on the host locale.
const testModeVariable = "COVGATE_TEST"

const defaultLocale = "en-GB"

type LocaleProvider interface {
	GetLocales() ([]string, error)
}

type DefaultLocaleProvider struct{}

func (provider DefaultLocaleProvider) GetLocales() ([]string, error) {
	return goLocale.GetLocales()
}

//go:embed lang/*.json
var langFS embed.FS

var (
	langDir        = "lang"
	localeProvider LocaleProvider = DefaultLocaleProvider{}

	setupOnce sync.Once
	// mu guards localizer.Get(); go-i18n's lookup cache is not safe for concurrent use.
	mu        sync.Mutex
	localizer *i18nLib.Localizer
)

type TData map[string]interface{}

type Tvars struct {
	Count int
	Data  *TData
}

// T translates key. At most one Tvars may be passed.
func T(key string, args ...Tvars) string {
	if _, present := os.LookupEnv(testModeVariable); present {
		return formatKeyAndArgs(key, args...)
	}
	if len(args) > 1 {
		panic("Too many arguments")
	}

	setupOnce.Do(setup)

	mu.Lock()
	defer mu.Unlock()

	if len(args) == 0 {
		return localizer.Get(key)
	}
	return localizer.Get(key, i18nLib.Vars(varsFor(args[0])))
}

func setup() {
	files, err := langFS.ReadDir(langDir)
	if err != nil {
		panic(err)
	}

	locales := []string{defaultLocale}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		locale := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		if !strings.EqualFold(locale, defaultLocale) {
			locales = append(locales, locale)
		}
	}

	bundle := i18nLib.NewBundle(
		i18nLib.WithDefaultLocale(defaultLocale),
		i18nLib.WithLocales(locales...),
	)
	if err := bundle.LoadFS(langFS, fmt.Sprintf("%s/*.json", langDir)); err != nil {
		panic(err)
	}

	mu.Lock()
	localizer = bundle.NewLocalizer(buildLocalizerLocales(userLocales())...)
	mu.Unlock()
}

func varsFor(arg Tvars) map[string]interface{} {
	vars := make(map[string]interface{})
	if arg.Data != nil {
		for key, value := range *arg.Data {
			vars[key] = value
		}
	}
	vars["count"] = arg.Count
	return vars
}

func userLocales() []string {
	if envLocale, present := os.LookupEnv("LANG"); present {
		return []string{envLocale}
	}

	detected, err := localeProvider.GetLocales()
	if err != nil {
		return []string{language.English.String()}
	}
	return detected
}

func formatKeyAndArgs(key string, args ...Tvars) string {
	var sb strings.Builder
	sb.WriteString(key)

	for i, arg := range args {
		sb.WriteString(fmt.Sprintf(", Arg %d: {Count: %d, Data: %v}", i+1, arg.Count, arg.Data))
	}

	return sb.String()
}

// buildLocalizerLocales canonicalises raw locale names ("en_GB.UTF-8") and
// adds each base language as a fallback.
func buildLocalizerLocales(rawLocales []string) []string {
	locales := make([]string, 0, len(rawLocales)*2)
	seen := make(map[string]struct{}, len(rawLocales)*2)

	add := func(locale string) {
		if _, ok := seen[locale]; ok {
			return
		}
		seen[locale] = struct{}{}
		locales = append(locales, locale)
	}

	for _, raw := range rawLocales {
		if raw == "" {
			continue
		}
		if dot := strings.IndexByte(raw, '.'); dot > 0 {
			raw = raw[:dot]
		}

		tag, err := language.Parse(raw)
		if err != nil {
			continue
		}

		add(tag.String())
		if base, _ := tag.Base(); base.String() != "" {
			add(base.String())
		}
	}

	return locales
}

// resetForTesting clears cached state so the next T call rebuilds the localizer.
func resetForTesting() {
	mu.Lock()
	localizer = nil
	mu.Unlock()
	setupOnce = sync.Once{}
}
