package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}

// Verify checks config values against enum and minimum constraints declared in the schema tags
func Verify(cfg *Config) error {
	r := jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true}
	schema := r.Reflect(&Config{})

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var errs []string
	verifyObject(schema, values, "", &errs)
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("schema constraints violated: %s", strings.Join(errs, "; "))
	}
	return nil
}

// verifyObject walks schema properties and checks the matching values
func verifyObject(s *jsonschema.Schema, values map[string]any, prefix string, errs *[]string) {
	if s == nil || s.Properties == nil {
		return
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name, prop := pair.Key, pair.Value
		val, ok := values[name]
		if !ok || val == nil {
			continue
		}
		path := prefix + name
		if nested, ok := val.(map[string]any); ok {
			verifyObject(prop, nested, path+".", errs)
			continue
		}

		if len(prop.Enum) > 0 && !inEnum(prop.Enum, val) {
			*errs = append(*errs, fmt.Sprintf("%s must be one of %v, got %v", path, prop.Enum, val))
		}
		if prop.Minimum != "" {
			num, isNum := val.(float64)
			minimum, err := prop.Minimum.Float64()
			if isNum && err == nil && num < minimum {
				*errs = append(*errs, fmt.Sprintf("%s must be at least %v, got %v", path, prop.Minimum, val))
			}
		}
	}
}

func inEnum(enum []any, val any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(val) {
			return true
		}
	}
	return false
}
