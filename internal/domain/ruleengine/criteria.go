package ruleengine

import (
	"fmt"
	"strings"
)

// criteria helpers extract typed values out of a Rule's open criteria
// mapping (decoded from JSONB, so numbers surface as float64 and lists as
// []any). Centralizing the extraction keeps each evaluator's Evaluate
// method reading like the predicate it implements rather than a type-assertion
// thicket.

func criteriaFloat(c map[string]any, key string) (float64, error) {
	v, ok := c[key]
	if !ok {
		return 0, fmt.Errorf("missing required criteria key %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("criteria key %q must be numeric", key)
	}
}

func criteriaFloatOptional(c map[string]any, key string) (float64, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func criteriaInt(c map[string]any, key string) (int, error) {
	f, err := criteriaFloat(c, key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func criteriaString(c map[string]any, key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", fmt.Errorf("missing required criteria key %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("criteria key %q must be a string", key)
	}
	return s, nil
}

func criteriaStringSlice(c map[string]any, key string) ([]string, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss, true
		}
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

func criteriaBool(c map[string]any, key string) (bool, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func containsFold(list []string, target string) bool {
	for _, item := range list {
		if strings.EqualFold(item, target) {
			return true
		}
	}
	return false
}
