package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var goTemplateVar = regexp.MustCompile(`\{\{\s*\.([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// validate enforces the structural rules of a prompts file: every
// content placeholder is declared in input_variables and vice versa,
// the format tag is recognized, and one format is used throughout.
func (r *Registry) validate() error {
	if len(r.entries) == 0 {
		return fmt.Errorf("prompts document has no entries")
	}

	fileFormat := ""
	for _, e := range r.entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if fileFormat == "" {
			fileFormat = e.TemplateFormat
		} else if e.TemplateFormat != fileFormat {
			return fmt.Errorf("prompt %q: template_format %q differs from %q used earlier in the file",
				e.Name, e.TemplateFormat, fileFormat)
		}
	}
	return nil
}

// Validate checks a single entry against the schema rules.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("prompt %q: content is empty", e.Name)
	}

	switch e.TemplateFormat {
	case FormatFString, FormatGoTemplate:
	case "":
		return fmt.Errorf("prompt %q: template_format is missing", e.Name)
	default:
		return fmt.Errorf("prompt %q: unrecognized template_format %q", e.Name, e.TemplateFormat)
	}

	declared := make(map[string]bool, len(e.InputVariables))
	for _, v := range e.InputVariables {
		if v == "" {
			return fmt.Errorf("prompt %q: input variable name must not be empty", e.Name)
		}
		if declared[v] {
			return fmt.Errorf("prompt %q: input variable %q declared twice", e.Name, v)
		}
		declared[v] = true
	}

	referenced, err := e.Placeholders()
	if err != nil {
		return fmt.Errorf("prompt %q: %w", e.Name, err)
	}

	for _, v := range referenced {
		if !declared[v] {
			return fmt.Errorf("prompt %q: content references %q which is not in input_variables", e.Name, v)
		}
	}
	refSet := make(map[string]bool, len(referenced))
	for _, v := range referenced {
		refSet[v] = true
	}
	for _, v := range e.InputVariables {
		if !refSet[v] {
			return fmt.Errorf("prompt %q: input variable %q is never referenced in content", e.Name, v)
		}
	}
	return nil
}

// Placeholders returns the sorted set of variable names referenced by
// the entry's content, according to its template format.
func (e *Entry) Placeholders() ([]string, error) {
	var names []string
	var err error

	switch e.TemplateFormat {
	case FormatGoTemplate:
		seen := make(map[string]bool)
		for _, m := range goTemplateVar.FindAllStringSubmatch(e.Content, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				names = append(names, m[1])
			}
		}
	default:
		names, err = fstringPlaceholders(e.Content)
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(names)
	return names, nil
}

// fstringPlaceholders scans brace-delimited markers. Doubled braces
// ("{{" and "}}") are literals, as in the f-string convention.
func fstringPlaceholders(content string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			if i+1 < len(content) && content[i+1] == '{' {
				i++
				continue
			}
			end := strings.IndexByte(content[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed substitution marker at offset %d", i)
			}
			name := content[i+1 : i+1+end]
			if !isIdentifier(name) {
				return nil, fmt.Errorf("invalid substitution marker {%s}", name)
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(content) && content[i+1] == '}' {
				i++
				continue
			}
			return nil, fmt.Errorf("unmatched '}' at offset %d", i)
		}
	}
	return names, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
