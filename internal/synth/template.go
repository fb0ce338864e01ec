package synth

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Template is a narrative string with named {placeholders}
type Template struct {
	ID   string
	Text string
}

// Placeholders returns the distinct placeholder names used by the template, in
// order of first appearance.
func (t Template) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(t.Text, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Vocabulary maps a placeholder name to its candidate values
type Vocabulary map[string][]string

// TemplateBindingError reports a template that cannot be rendered because one of
// its placeholders has no binding.
type TemplateBindingError struct {
	TemplateID  string
	Placeholder string
}

func (e *TemplateBindingError) Error() string {
	if e.Placeholder == "" {
		return fmt.Sprintf("unknown template %q", e.TemplateID)
	}
	return fmt.Sprintf("template %q references unbound placeholder %q", e.TemplateID, e.Placeholder)
}

type compiled struct {
	template     Template
	placeholders []string
}

// Library is an immutable set of templates together with the vocabulary that
// binds every placeholder they use.
type Library struct {
	templates map[string]compiled
	vocab     Vocabulary
}

// NewLibrary validates that every placeholder of every template has a non-empty
// vocabulary entry and returns the compiled library.
func NewLibrary(templates []Template, vocab Vocabulary) (*Library, error) {
	lib := &Library{
		templates: make(map[string]compiled, len(templates)),
		vocab:     make(Vocabulary, len(vocab)),
	}
	for name, values := range vocab {
		lib.vocab[name] = append([]string(nil), values...)
	}

	for _, t := range templates {
		if _, dup := lib.templates[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c := compiled{template: t, placeholders: t.Placeholders()}
		for _, name := range c.placeholders {
			if len(lib.vocab[name]) == 0 {
				return nil, &TemplateBindingError{TemplateID: t.ID, Placeholder: name}
			}
		}
		lib.templates[t.ID] = c
	}
	return lib, nil
}

// Has reports whether the library contains a template with the given id.
func (l *Library) Has(id string) bool {
	_, ok := l.templates[id]
	return ok
}

// IDs returns the sorted ids of the templates whose id starts with prefix.
func (l *Library) IDs(prefix string) []string {
	var ids []string
	for id := range l.templates {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Values returns the candidates bound to a vocabulary category.
func (l *Library) Values(name string) []string {
	return l.vocab[name]
}

// Pick draws one value uniformly from a vocabulary category.
func (l *Library) Pick(rng *rand.Rand, name string) (string, error) {
	values := l.vocab[name]
	if len(values) == 0 {
		return "", &TemplateBindingError{Placeholder: name}
	}
	return values[rng.IntN(len(values))], nil
}

// Bind draws a value for every placeholder of the template. Values in overrides
// take precedence over the vocabulary.
func (l *Library) Bind(rng *rand.Rand, id string, overrides map[string]string) (map[string]string, error) {
	c, ok := l.templates[id]
	if !ok {
		return nil, &TemplateBindingError{TemplateID: id}
	}

	values := make(map[string]string, len(c.placeholders))
	for _, name := range c.placeholders {
		if v, ok := overrides[name]; ok {
			values[name] = v
			continue
		}
		candidates := l.vocab[name]
		if len(candidates) == 0 {
			return nil, &TemplateBindingError{TemplateID: id, Placeholder: name}
		}
		values[name] = candidates[rng.IntN(len(candidates))]
	}
	return values, nil
}

// Render draws fresh values for the template's placeholders and substitutes them.
func (l *Library) Render(rng *rand.Rand, id string, overrides map[string]string) (string, error) {
	values, err := l.Bind(rng, id, overrides)
	if err != nil {
		return "", err
	}
	return Fill(l.templates[id].template.Text, values)
}

// RenderAny renders one template chosen uniformly among those in ids.
func (l *Library) RenderAny(rng *rand.Rand, ids []string, overrides map[string]string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("no templates to choose from")
	}
	return l.Render(rng, ids[rng.IntN(len(ids))], overrides)
}

// Fill substitutes values into text. It is deterministic: the same text and
// values always give the same output.
func Fill(text string, values map[string]string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		v, ok := values[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return v
	})
	if missing != "" {
		return "", &TemplateBindingError{Placeholder: missing}
	}
	return out, nil
}
