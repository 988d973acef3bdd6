package prompt

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal serializes the registry back to YAML, preserving document
// order. Re-parsing the output yields the same entries.
func (r *Registry) Marshal() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, e := range r.entries {
		vars := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range e.InputVariables {
			vars.Content = append(vars.Content, scalar(v))
		}

		content := scalar(e.Content)
		if strings.Contains(e.Content, "\n") {
			content.Style = yaml.LiteralStyle
		}

		entry := &yaml.Node{Kind: yaml.MappingNode}
		entry.Content = append(entry.Content,
			scalar("input_variables"), vars,
			scalar("content"), content,
			scalar("template_format"), scalar(e.TemplateFormat),
		)

		root.Content = append(root.Content, scalar(e.Name), entry)
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompts: %w", err)
	}
	return out, nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}
