package modulestd

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"rigz/module"
	"rigz/value"
)

// ConfigModule exposes `config.load(text)` / `config.dump(obj)`, turning
// YAML documents into (and back out of) the engine's own MapValue/
// ListValue tree. Grounded on MongooseMoo-barn/conformance/loader.go's
// `yaml.Unmarshal(data, &suite)` call site — that loader deserializes
// into a fixed Go struct (conformance/schema.go); here the target shape
// is this engine's own dynamic Value tree, so Unmarshal targets
// `interface{}` and the result is walked into Values by hand.
type ConfigModule struct {
	module.BaseModule
}

func NewConfigModule() *ConfigModule {
	return &ConfigModule{BaseModule: module.BaseModule{ModuleName: "config"}}
}

func (m *ConfigModule) Call(fn string, args []value.Value) (value.Value, error) {
	switch fn {
	case "load":
		if len(args) != 1 {
			return nil, fmt.Errorf("config.load(text) takes 1 argument, got %d", len(args))
		}
		text, ok := args[0].(value.StringValue)
		if !ok {
			return nil, fmt.Errorf("config.load: argument must be a String")
		}
		var raw any
		if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
			return nil, fmt.Errorf("config.load: %w", err)
		}
		return fromYAML(raw), nil
	case "dump":
		if len(args) != 1 {
			return nil, fmt.Errorf("config.dump(value) takes 1 argument, got %d", len(args))
		}
		out, err := yaml.Marshal(toYAML(args[0]))
		if err != nil {
			return nil, fmt.Errorf("config.dump: %w", err)
		}
		return value.NewString(string(out)), nil
	default:
		return nil, fmt.Errorf("config has no function %q", fn)
	}
}

// fromYAML walks the dynamic tree yaml.Unmarshal produces into this
// engine's own composite Values.
func fromYAML(raw any) value.Value {
	switch v := raw.(type) {
	case nil:
		return value.None
	case bool:
		return value.NewBool(v)
	case int:
		return value.NewInt(int64(v))
	case int64:
		return value.NewInt(v)
	case float64:
		return value.NewFloat(v)
	case string:
		return value.NewString(v)
	case []any:
		items := make([]value.Value, len(v))
		for i, e := range v {
			items[i] = fromYAML(e)
		}
		return value.NewList(items...)
	case map[string]any:
		m := value.NewMap()
		for k, e := range v {
			m.Set(value.NewString(k), fromYAML(e))
		}
		return m
	case map[any]any:
		m := value.NewMap()
		for k, e := range v {
			m.Set(fromYAML(k), fromYAML(e))
		}
		return m
	default:
		return value.NewString(fmt.Sprintf("%v", v))
	}
}

// toYAML is fromYAML's inverse, producing plain Go values yaml.Marshal
// can serialize.
func toYAML(v value.Value) any {
	switch n := v.(type) {
	case value.NoneValue:
		return nil
	case value.BoolValue:
		return bool(n)
	case value.IntValue:
		return int64(n)
	case value.FloatValue:
		return float64(n)
	case value.StringValue:
		return string(n)
	case value.ListValue:
		out := make([]any, n.Len())
		for i := 0; i < n.Len(); i++ {
			e, _ := n.Get(i)
			out[i] = toYAML(e)
		}
		return out
	case value.MapValue:
		out := make(map[string]any, n.Len())
		for _, k := range n.Keys() {
			e, _ := n.Get(k)
			out[k.String()] = toYAML(e)
		}
		return out
	default:
		return v.String()
	}
}
