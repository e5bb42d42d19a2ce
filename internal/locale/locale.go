// Package locale translates narration phrases.
//
// Phrases are written in Spanish in the source and used as gettext message
// ids; other languages are embedded .po catalogs under po/. A missing
// language or message falls back to the Spanish text.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
	"github.com/rs/zerolog/log"
)

// Source is the language the phrases are written in.
const Source = "es"

//go:embed po/*.po
var files embed.FS

var (
	loadOnce sync.Once
	catalogs map[string]*gotext.Po
)

func load() {
	catalogs = make(map[string]*gotext.Po)
	names, err := fs.Glob(files, "po/*.po")
	if err != nil {
		log.Error().Err(err).Msg("list locale catalogs")
		return
	}
	for _, n := range names {
		b, err := files.ReadFile(n)
		if err != nil {
			log.Error().Err(err).Str("file", n).Msg("read locale catalog")
			continue
		}
		po := gotext.NewPo()
		po.Parse(b)
		catalogs[strings.TrimSuffix(path.Base(n), ".po")] = po
	}
}

// Translator renders phrases in one language. The zero value renders the
// Spanish source text.
type Translator struct {
	lang string
	po   *gotext.Po
}

// For returns the translator for lang ("en", "en-US", "es"...). Unknown
// languages get the source text.
func For(lang string) Translator {
	loadOnce.Do(load)
	base := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	if po, ok := catalogs[base]; ok {
		return Translator{lang: base, po: po}
	}
	return Translator{lang: Source}
}

// Lang is the language the translator renders.
func (t Translator) Lang() string {
	if t.lang == "" {
		return Source
	}
	return t.lang
}

// Get translates msg and formats it with vars.
func (t Translator) Get(msg string, vars ...any) string {
	if t.po != nil {
		return t.po.Get(msg, vars...)
	}
	if len(vars) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, vars...)
}

// Languages lists the supported languages, source first.
func Languages() []string {
	loadOnce.Do(load)
	out := make([]string, 0, len(catalogs))
	for l := range catalogs {
		out = append(out, l)
	}
	sort.Strings(out)
	return append([]string{Source}, out...)
}
