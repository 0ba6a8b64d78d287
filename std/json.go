package std

// Package std - json.go
// Bundled std.json module: map/array <-> JSON string conversion,
// grounded on the teacher's std/json.go and its convertToGoMix /
// convertFromGoMix helpers that bridge the interpreter's object model
// and encoding/json's interface{} tree.

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/chiron-lang/chiron/value"
)

func init() {
	m := newModule("json")
	m.Functions["to_json"] = hostFunc("to_json", jsonToJSON)
	m.Functions["from_json"] = hostFunc("from_json", jsonFromJSON)
	register(m)
}

func jsonToJSON(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("to_json expects 1 argument, got %d", len(args))
	}
	native, err := toGoNative(args[0])
	if err != nil {
		return nil, fmt.Errorf("to_json: %w", err)
	}
	out, err := json.Marshal(native)
	if err != nil {
		return nil, fmt.Errorf("to_json: %w", err)
	}
	return &value.String{Value: string(out)}, nil
}

func jsonFromJSON(args []value.Value, _ map[string]value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("from_json expects 1 argument, got %d", len(args))
	}
	s, err := asString(args[0])
	if err != nil {
		return nil, err
	}
	var native interface{}
	if err := json.Unmarshal([]byte(s), &native); err != nil {
		return nil, fmt.Errorf("from_json: %w", err)
	}
	return fromGoNative(native)
}

// toGoNative walks a Chiron value into the plain interface{} tree
// encoding/json understands, the way the teacher's convertToGoMix does
// for its own object model.
func toGoNative(v value.Value) (interface{}, error) {
	switch val := v.(type) {
	case *value.Integer:
		return val.Value, nil
	case *value.Float:
		return val.Value, nil
	case *value.Boolean:
		return val.Value, nil
	case *value.Character:
		return string(val.Value), nil
	case *value.String:
		return val.Value, nil
	case *value.Unit:
		return nil, nil
	case *value.Array:
		out := make([]interface{}, len(val.Elements))
		for i, elem := range val.Elements {
			n, err := toGoNative(elem)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case *value.Tuple:
		out := make([]interface{}, len(val.Elements))
		for i, elem := range val.Elements {
			n, err := toGoNative(elem)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case *value.Map:
		out := make(map[string]interface{})
		for _, entry := range val.Entries() {
			key, ok := entry[0].(*value.String)
			if !ok {
				return nil, fmt.Errorf("to_json: map keys must be strings, got %s", entry[0].GetType())
			}
			n, err := toGoNative(entry[1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("to_json: unsupported value %s", v.GetType())
	}
}

// fromGoNative is convertFromGoMix's counterpart, rebuilding Chiron
// values from a decoded JSON tree. Objects become Maps keyed by
// String, arrays become Array (not Tuple — JSON has no fixed-arity
// notion), and JSON numbers, which encoding/json always hands back as
// float64, decode to Integer when whole and to Float otherwise.
func fromGoNative(native interface{}) (value.Value, error) {
	switch v := native.(type) {
	case nil:
		return &value.Unit{}, nil
	case bool:
		return &value.Boolean{Value: v}, nil
	case float64:
		if v == float64(int64(v)) {
			return &value.Integer{Value: int64(v)}, nil
		}
		return &value.Float{Value: v}, nil
	case string:
		return &value.String{Value: v}, nil
	case []interface{}:
		elements := make([]value.Value, len(v))
		for i, elem := range v {
			cv, err := fromGoNative(elem)
			if err != nil {
				return nil, err
			}
			elements[i] = cv
		}
		return &value.Array{Elements: elements}, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := value.NewMap()
		for _, k := range keys {
			cv, err := fromGoNative(v[k])
			if err != nil {
				return nil, err
			}
			if err := m.Set(&value.String{Value: k}, cv); err != nil {
				return nil, err
			}
		}
		return m, nil
	default:
		return nil, fmt.Errorf("from_json: unsupported JSON value %T", v)
	}
}
