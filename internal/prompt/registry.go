// Package prompt loads, validates, and renders the tutoring prompt
// templates. Templates live in a YAML file mapping a prompt name to its
// content, declared input variables, and substitution format.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/tmc/langchaingo/prompts"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Recognized template_format tags.
const (
	FormatFString    = "f-string"
	FormatGoTemplate = "go-template"
)

// Entry is a single prompt template as it appears in the YAML file.
type Entry struct {
	Name           string   `yaml:"-"`
	InputVariables []string `yaml:"input_variables"`
	Content        string   `yaml:"content"`
	TemplateFormat string   `yaml:"template_format"`
}

// Registry holds the parsed prompt entries in document order.
type Registry struct {
	entries []*Entry
	byName  map[string]*Entry
}

// Default returns the registry built from the embedded prompts file.
func Default() *Registry {
	r, err := Load(bytes.NewReader(defaultPrompts))
	if err != nil {
		panic(fmt.Sprintf("embedded prompts file is invalid: %v", err))
	}
	return r
}

// LoadFile loads and validates a prompts file from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompts file: %w", err)
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Load parses a prompts document and validates every entry. Duplicate
// prompt names are rejected, and document order is preserved.
func Load(rd io.Reader) (*Registry, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prompts YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("prompts document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("prompts document must be a mapping of name to entry, got %s", nodeKind(root))
	}

	r := &Registry{byName: make(map[string]*Entry)}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]

		name := keyNode.Value
		if name == "" {
			return nil, fmt.Errorf("line %d: prompt name must not be empty", keyNode.Line)
		}
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("line %d: duplicate prompt name %q", keyNode.Line, name)
		}

		entry := &Entry{}
		if err := valNode.Decode(entry); err != nil {
			return nil, fmt.Errorf("prompt %q: %w", name, err)
		}
		entry.Name = name

		r.entries = append(r.entries, entry)
		r.byName[name] = entry
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Get returns the entry with the given name.
func (r *Registry) Get(name string) (*Entry, error) {
	entry, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown prompt %q", name)
	}
	return entry, nil
}

// Names returns all prompt names in document order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Name)
	}
	return names
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns all entries in document order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Render substitutes the supplied variables into the named template.
// The caller must supply exactly the variables the entry declares.
func (r *Registry) Render(name string, vars map[string]string) (string, error) {
	entry, err := r.Get(name)
	if err != nil {
		return "", err
	}
	return entry.Render(vars)
}

// Render substitutes the supplied variables into the entry's content.
func (e *Entry) Render(vars map[string]string) (string, error) {
	declared := make(map[string]bool, len(e.InputVariables))
	for _, v := range e.InputVariables {
		declared[v] = true
		if _, ok := vars[v]; !ok {
			return "", fmt.Errorf("prompt %q: missing value for input variable %q", e.Name, v)
		}
	}
	for v := range vars {
		if !declared[v] {
			return "", fmt.Errorf("prompt %q: unexpected variable %q", e.Name, v)
		}
	}

	values := make(map[string]any, len(vars))
	for k, v := range vars {
		values[k] = v
	}

	tmpl := prompts.PromptTemplate{
		Template:       e.Content,
		InputVariables: e.InputVariables,
		TemplateFormat: templateFormat(e.TemplateFormat),
	}
	out, err := tmpl.Format(values)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", e.Name, err)
	}
	return out, nil
}

// Template converts the entry to a langchaingo prompt template.
func (e *Entry) Template() prompts.PromptTemplate {
	return prompts.PromptTemplate{
		Template:       e.Content,
		InputVariables: e.InputVariables,
		TemplateFormat: templateFormat(e.TemplateFormat),
	}
}

func templateFormat(tag string) prompts.TemplateFormat {
	switch tag {
	case FormatGoTemplate:
		return prompts.TemplateFormatGoTemplate
	default:
		return prompts.TemplateFormatFString
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown node"
	}
}
