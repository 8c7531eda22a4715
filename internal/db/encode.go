package db

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/evcraddock/hvr-studio/internal/store"
)

// encodeValue converts v into JSON-ready data, resolving transforms with
// the write time ts.
func encodeValue(v any, ts time.Time) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case store.IncrementOp:
		return x.N, nil
	case store.Transform:
		if store.IsServerTimestamp(x) {
			return ts.Format(timeLayout), nil
		}
		return nil, fmt.Errorf("unsupported transform %T", x)
	case time.Time:
		return x.UTC().Format(timeLayout), nil
	case *time.Time:
		if x == nil {
			return nil, nil
		}
		return x.UTC().Format(timeLayout), nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			enc, err := encodeValue(val, ts)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", k, err)
			}
			out[k] = enc
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			enc, err := encodeValue(val, ts)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = enc
		}
		return out, nil
	case string, bool, int, int32, int64, float32, float64:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return encodeValue(items, ts)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return encodeValue(m, ts)
	case reflect.String:
		return rv.String(), nil
	}

	return nil, fmt.Errorf("unsupported value type %T", v)
}

// setPath writes value at the dotted path inside data, creating
// intermediate maps as needed.
func setPath(data map[string]any, path string, value any, ts time.Time) error {
	segs := strings.Split(path, ".")
	parent := data
	for _, seg := range segs[:len(segs)-1] {
		next, ok := parent[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			parent[seg] = next
		}
		parent = next
	}
	return assign(parent, segs[len(segs)-1], value, ts)
}

// mergeInto merges src into dst: nested maps are merged key by key,
// everything else replaces the stored value.
func mergeInto(dst, src map[string]any, ts time.Time) error {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			existing, ok := dst[k].(map[string]any)
			if !ok {
				existing = map[string]any{}
				dst[k] = existing
			}
			if err := mergeInto(existing, sub, ts); err != nil {
				return fmt.Errorf("field %s: %w", k, err)
			}
			continue
		}
		if err := assign(dst, k, v, ts); err != nil {
			return err
		}
	}
	return nil
}

func assign(parent map[string]any, key string, value any, ts time.Time) error {
	if inc, ok := value.(store.IncrementOp); ok {
		parent[key] = toInt64(parent[key]) + inc.N
		return nil
	}
	enc, err := encodeValue(value, ts)
	if err != nil {
		return fmt.Errorf("field %s: %w", key, err)
	}
	parent[key] = enc
	return nil
}

// toInt64 reads a stored counter. Non-numeric values count as zero.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
