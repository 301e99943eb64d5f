package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/tally/internal/errors"
	"github.com/rileyhilliard/tally/internal/util"
	"gopkg.in/yaml.v3"
)

// settableKeys maps each key `tally config set` accepts to its YAML tag.
var settableKeys = map[string]string{
	"graph":          "!!str",
	"data_page_name": "!!str",
	"journal_title":  "!!str",
	"chart_height":   "!!int",
	"date_format":    "!!str",
	"theme":          "!!str",
}

// SettableKeys returns the keys SetValue accepts, sorted.
func SettableKeys() []string {
	return []string{"chart_height", "data_page_name", "date_format", "graph", "journal_title", "theme"}
}

// SetValue sets a top-level key in the config file. It preserves the
// existing YAML structure and comments. The file is validated after the
// change and left untouched if the result is invalid.
func SetValue(configPath, key, value string) error {
	tag, ok := settableKeys[key]
	if !ok {
		suggestion := "Settable keys: " + util.JoinOrDefault(SettableKeys(), "(none)")
		if similar := util.SuggestSimilar(key, SettableKeys(), 1); len(similar) > 0 {
			suggestion = fmt.Sprintf("Did you mean '%s'? %s", similar[0], suggestion)
		}
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			suggestion)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return fmt.Errorf("invalid YAML document structure")
	}

	docNode := root.Content[0]
	if docNode.Kind != yaml.MappingNode {
		return fmt.Errorf("expected mapping at document root")
	}

	if valueNode := findMapValue(docNode, key); valueNode != nil {
		valueNode.Kind = yaml.ScalarNode
		valueNode.Tag = tag
		valueNode.Value = value
		valueNode.Content = nil
	} else {
		docNode.Content = append(docNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
		)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	// Validate the result the same way Load would see it.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(buf.String()), cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid value for %s", value, key), "")
	}
	cfg.Graph = ExpandPath(cfg.Graph, filepath.Dir(configPath))
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// Write saves cfg to path. An existing file is only replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("%s already exists", path),
			"Use --force to overwrite it.")
	}

	var buf strings.Builder
	buf.WriteString("# tally configuration\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory",
			"Check directory permissions")
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check file permissions")
	}
	return nil
}
