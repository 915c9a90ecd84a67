package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formval/pkg/template"
)

func floatPtr(v float64) *float64 { return &v }

// Defaults returns the built-in template document: a medical intake form and
// an employee record form. The host decides when (and whether) to persist it
// via WriteDefault; loading never writes.
func Defaults() *Doc {
	return &Doc{
		Version:     "1.0",
		Description: "Default form field mapping rules",
		Templates: map[string]TemplateConfig{
			"medical_form": {
				Description:    "Medical Intake Form",
				Category:       "healthcare",
				HIPAACompliant: true,
				Fields: NewFieldMap(
					FieldEntry{Name: "patient_name", Config: FieldConfig{
						Type:        "text",
						Required:    true,
						MaxLength:   50,
						Description: "Patient Name",
						Example:     "Jane Chang",
					}},
					FieldEntry{Name: "patient_id", Config: FieldConfig{
						Type:              "text",
						Required:          true,
						MaxLength:         20,
						ValidationPattern: "[A-Z0-9]+",
						Description:       "Patient ID",
						Example:           "P12345",
					}},
					FieldEntry{Name: "date_of_birth", Config: FieldConfig{
						Type:        "date",
						Required:    true,
						Description: "Date of Birth",
						Example:     "1990-01-15",
					}},
					FieldEntry{Name: "gender", Config: FieldConfig{
						Type:        "select",
						Required:    true,
						Options:     []string{"Male", "Female", "Other", "Prefer not to say"},
						Description: "Gender",
						Example:     "Male",
					}},
					FieldEntry{Name: "emergency_contact", Config: FieldConfig{
						Type:        "boolean",
						Description: "Has Emergency Contact",
						Example:     true,
					}},
					FieldEntry{Name: "phone", Config: FieldConfig{
						Type:        "phone",
						MaxLength:   20,
						Description: "Phone Number",
						Example:     "+886-2-1234-5678",
					}},
					FieldEntry{Name: "address", Config: FieldConfig{
						Type:        "textarea",
						MaxLength:   200,
						Description: "Home Address",
						Example:     "7 Xinyi Road Sec 5, Taipei",
					}},
					FieldEntry{Name: "insurance_id", Config: FieldConfig{
						Type:        "text",
						MaxLength:   30,
						Description: "Insurance ID",
						Example:     "INS987654321",
					}},
				),
			},
			"employee_form": {
				Description:   "Employee Record Form",
				Category:      "hr",
				GDPRCompliant: true,
				Fields: NewFieldMap(
					FieldEntry{Name: "employee_name", Config: FieldConfig{
						Type:        "text",
						Required:    true,
						MaxLength:   60,
						Description: "Employee Name",
						Example:     "Sam Lee",
					}},
					FieldEntry{Name: "employee_id", Config: FieldConfig{
						Type:              "text",
						Required:          true,
						MaxLength:         15,
						ValidationPattern: "EMP[0-9]{4,8}",
						Description:       "Employee Number",
						Example:           "EMP12345",
					}},
					FieldEntry{Name: "department", Config: FieldConfig{
						Type:        "select",
						Required:    true,
						Options:     []string{"IT", "HR", "Finance", "Marketing", "Sales", "Operations"},
						Description: "Department",
						Example:     "IT",
					}},
					FieldEntry{Name: "position", Config: FieldConfig{
						Type:        "text",
						Required:    true,
						MaxLength:   50,
						Description: "Position",
						Example:     "Senior Developer",
					}},
					FieldEntry{Name: "hire_date", Config: FieldConfig{
						Type:        "date",
						Required:    true,
						Description: "Hire Date",
						Example:     "2024-01-15",
					}},
					FieldEntry{Name: "salary", Config: FieldConfig{
						Type:        "number",
						MinValue:    floatPtr(0),
						MaxValue:    floatPtr(10000000),
						Description: "Salary",
						Example:     80000,
					}},
					FieldEntry{Name: "remote_work", Config: FieldConfig{
						Type:        "boolean",
						Description: "Remote Work Eligible",
						Example:     true,
					}},
				),
			},
		},
		ValidationSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"version": map[string]any{"type": "string"},
				"templates": map[string]any{
					"type": "object",
					"additionalProperties": map[string]any{
						"type":     "object",
						"required": []any{"description", "fields"},
						"properties": map[string]any{
							"description": map[string]any{"type": "string"},
							"fields":      map[string]any{"type": "object"},
						},
					},
				},
			},
		},
		Settings: Settings{
			HIPAACompliance: true,
			GDPRCompliance:  true,
			LogAccess:       true,
			AuditTrail:      true,
			MaxFileSizeMB:   50,
		},
	}
}

// DefaultRegistry builds the registry for the built-in template set.
func DefaultRegistry() *template.Registry {
	registry, err := BuildRegistry(Defaults())
	if err != nil {
		panic(err)
	}
	return registry
}

// WriteDefault persists the built-in template document to path, creating
// parent directories as needed. The format follows the extension: YAML for
// .yaml/.yml, JSON otherwise. This is the explicit bootstrap step the host
// runs once; the loader itself never writes.
func WriteDefault(path string) error {
	doc := Defaults()

	var raw []byte
	var err error
	if isYAMLSource(path) {
		raw, err = yaml.Marshal(doc)
	} else {
		raw, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config: write defaults: %w", err)
	}
	return nil
}
