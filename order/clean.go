package order

import (
	"encoding/json"

	"storefront-api/models"
)

// Clean drops nil values at every depth of a decoded JSON document.
// Empty maps and slices are kept.
func Clean(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if c := Clean(val); c != nil {
				out[k] = c
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			if c := Clean(val); c != nil {
				out = append(out, c)
			}
		}
		return out
	default:
		return v
	}
}

// Document renders rec as a cleaned generic document for publishers and exports
func Document(rec models.OrderRecord) (map[string]interface{}, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	cleaned, _ := Clean(doc).(map[string]interface{})
	return cleaned, nil
}
