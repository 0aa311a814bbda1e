package copywriter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"
)

// TemplateEngine renders Liquid sources and caches parsed templates by id.
type TemplateEngine struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewTemplateEngine creates an engine with the copy filters registered.
func NewTemplateEngine() *TemplateEngine {
	te := &TemplateEngine{engine: liquid.NewEngine()}
	te.registerFilters()
	return te
}

func (te *TemplateEngine) registerFilters() {
	// {{ features | join_list }} renders "a, b and c".
	te.engine.RegisterFilter("join_list", func(items []interface{}) string {
		parts := make([]string, 0, len(items))
		for _, it := range items {
			if s := strings.TrimSpace(fmt.Sprint(it)); s != "" {
				parts = append(parts, s)
			}
		}
		return JoinList(parts)
	})

	// {{ audience | lower }}
	te.engine.RegisterFilter("lower", func(s string) string {
		return strings.ToLower(s)
	})

	// {{ text | truncate_chars: 60 }} counts runes, not bytes.
	te.engine.RegisterFilter("truncate_chars", func(s string, n int) string {
		return TruncateRunes(s, n)
	})
}

// Parse compiles src and reports syntax errors without caching.
func (te *TemplateEngine) Parse(src string) error {
	_, err := te.engine.ParseString(src)
	return err
}

// Render renders src with bindings. When id is non-empty the parsed
// template is cached under it and src is ignored on later calls.
func (te *TemplateEngine) Render(id, src string, bindings map[string]interface{}) (string, error) {
	if id != "" {
		if cached, ok := te.cache.Load(id); ok {
			return te.render(id, cached.(*liquid.Template), bindings)
		}
	}

	tpl, err := te.engine.ParseString(src)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", id, err)
	}
	if id != "" {
		te.cache.Store(id, tpl)
	}
	return te.render(id, tpl, bindings)
}

func (te *TemplateEngine) render(id string, tpl *liquid.Template, bindings map[string]interface{}) (string, error) {
	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render template %q: %w", id, err)
	}
	return out, nil
}

// JoinList joins items as "a", "a and b" or "a, b and c".
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// TruncateRunes shortens s to at most n runes, ending in "..." when cut.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
