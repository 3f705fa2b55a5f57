package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tobi-alade/docsorter/internal/index"
)

// metadataSchema constrains the classifier's metadata reply. Extraneous
// keys are stripped by sanitation before validation rather than rejected,
// so a chatty model degrades instead of failing.
func metadataSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"authors": map[string]any{"type": "string"},
			"title":   map[string]any{"type": "string"},
			"date":    map[string]any{"type": "string"},
			"subject": map[string]any{"type": "string"},
		},
	}
}

// ParseMetadata turns a raw metadata reply into a Metadata value. Every
// failure mode (no JSON object, invalid JSON, schema mismatch) degrades
// to all-empty metadata.
func ParseMetadata(raw string) index.Metadata {
	obj := extractJSONObject(raw)
	if obj == "" {
		return index.Metadata{}
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(obj), &m); err != nil {
		return index.Metadata{}
	}

	cleaned, err := sanitizeMetadata(m)
	if err != nil {
		return index.Metadata{}
	}
	if err := validateAgainstSchema(metadataSchema(), cleaned); err != nil {
		return index.Metadata{}
	}

	var meta index.Metadata
	if err := json.Unmarshal(cleaned, &meta); err != nil {
		return index.Metadata{}
	}
	meta.Date = NormalizeDate(meta.Date)
	return meta
}

// sanitizeMetadata keeps only the schema keys and coerces their values to
// strings: arrays are joined, numbers rendered, nulls dropped.
func sanitizeMetadata(m map[string]any) ([]byte, error) {
	out := map[string]any{}
	for _, key := range []string{"authors", "title", "date", "subject"} {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case nil:
			// dropped
		case string:
			out[key] = strings.TrimSpace(t)
		case []any:
			var parts []string
			for _, item := range t {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, strings.TrimSpace(s))
				}
			}
			out[key] = strings.Join(parts, "; ")
		case float64:
			out[key] = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
		default:
			// unknown type -> drop
		}
	}
	return json.Marshal(out)
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// extractJSONObject returns the outermost {...} span of raw, tolerating
// prose or code fences around it.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return ""
}
