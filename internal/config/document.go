// Package config loads template configuration documents (JSON or YAML),
// optionally self-validates them against an embedded schema, and builds the
// template registry. It also owns the built-in default template set and its
// explicit write-on-request bootstrap.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Doc is the top-level template configuration document.
type Doc struct {
	Version          string                    `json:"version" yaml:"version"`
	Description      string                    `json:"description,omitempty" yaml:"description,omitempty"`
	Templates        map[string]TemplateConfig `json:"templates" yaml:"templates"`
	ValidationSchema map[string]any            `json:"validation_schema,omitempty" yaml:"validation_schema,omitempty"`
	Settings         Settings                  `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// TemplateConfig describes one named template in the document.
type TemplateConfig struct {
	Description    string   `json:"description" yaml:"description"`
	Category       string   `json:"category,omitempty" yaml:"category,omitempty"`
	HIPAACompliant bool     `json:"hipaa_compliant,omitempty" yaml:"hipaa_compliant,omitempty"`
	GDPRCompliant  bool     `json:"gdpr_compliant,omitempty" yaml:"gdpr_compliant,omitempty"`
	Fields         FieldMap `json:"fields" yaml:"fields"`
}

// FieldConfig is the serialized form of a field specification.
type FieldConfig struct {
	Type              string   `json:"type" yaml:"type"`
	Required          bool     `json:"required,omitempty" yaml:"required,omitempty"`
	MaxLength         int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MinValue          *float64 `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue          *float64 `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Options           []string `json:"options,omitempty" yaml:"options,omitempty"`
	ValidationPattern string   `json:"validation_pattern,omitempty" yaml:"validation_pattern,omitempty"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	Example           any      `json:"example,omitempty" yaml:"example,omitempty"`
}

// Settings carries compliance and audit flags consumed by the rendering and
// host layers, never by the validation core.
type Settings struct {
	HIPAACompliance bool `json:"hipaa_compliance,omitempty" yaml:"hipaa_compliance,omitempty"`
	GDPRCompliance  bool `json:"gdpr_compliance,omitempty" yaml:"gdpr_compliance,omitempty"`
	LogAccess       bool `json:"log_access,omitempty" yaml:"log_access,omitempty"`
	EncryptOutput   bool `json:"encrypt_output,omitempty" yaml:"encrypt_output,omitempty"`
	AuditTrail      bool `json:"audit_trail,omitempty" yaml:"audit_trail,omitempty"`
	MaxFileSizeMB   int  `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty"`
}

// FieldMap is a name to FieldConfig mapping that preserves declaration order,
// which plain Go maps would lose. Field order in the source document becomes
// the template's field order.
type FieldMap struct {
	names   []string
	configs map[string]FieldConfig
}

// NewFieldMap builds a FieldMap from ordered name/config pairs.
func NewFieldMap(pairs ...FieldEntry) FieldMap {
	m := FieldMap{configs: make(map[string]FieldConfig, len(pairs))}
	for _, pair := range pairs {
		if _, exists := m.configs[pair.Name]; exists {
			continue
		}
		m.names = append(m.names, pair.Name)
		m.configs[pair.Name] = pair.Config
	}
	return m
}

// FieldEntry pairs a field name with its serialized configuration.
type FieldEntry struct {
	Name   string
	Config FieldConfig
}

// Names returns the field names in declaration order.
func (m FieldMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Get looks up a field configuration by name.
func (m FieldMap) Get(name string) (FieldConfig, bool) {
	cfg, ok := m.configs[name]
	return cfg, ok
}

// Len returns the number of fields.
func (m FieldMap) Len() int { return len(m.names) }

// UnmarshalJSON decodes the object token by token so key order survives.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("config: fields must be an object")
	}

	m.names = nil
	m.configs = make(map[string]FieldConfig)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("config: field name must be a string")
		}

		var cfg FieldConfig
		if err := dec.Decode(&cfg); err != nil {
			return fmt.Errorf("config: field %q: %w", name, err)
		}

		if _, exists := m.configs[name]; !exists {
			m.names = append(m.names, name)
		}
		m.configs[name] = cfg
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON emits the fields in declaration order.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.configs[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML walks the mapping node's key/value pairs in document order.
func (m *FieldMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("config: fields must be a mapping")
	}

	m.names = nil
	m.configs = make(map[string]FieldConfig)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		var cfg FieldConfig
		if err := valueNode.Decode(&cfg); err != nil {
			return fmt.Errorf("config: field %q: %w", keyNode.Value, err)
		}

		if _, exists := m.configs[keyNode.Value]; !exists {
			m.names = append(m.names, keyNode.Value)
		}
		m.configs[keyNode.Value] = cfg
	}
	return nil
}

// MarshalYAML emits the fields as an ordered mapping.
func (m FieldMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range m.names {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.configs[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
