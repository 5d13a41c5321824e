package modulestd

import (
	"testing"

	"rigz/value"
)

func TestConfigLoadScalarsAndList(t *testing.T) {
	m := NewConfigModule()
	yaml := "name: test\ncount: 3\nitems:\n  - a\n  - b\n"
	v, err := m.Call("load", []value.Value{value.NewString(yaml)})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	mv, ok := v.(value.MapValue)
	if !ok {
		t.Fatalf("load result = %v (%T), want MapValue", v, v)
	}
	name, found := mv.Get(value.NewString("name"))
	if !found || !name.Equal(value.NewString("test")) {
		t.Errorf("name = %v, want test", name)
	}
	count, found := mv.Get(value.NewString("count"))
	if !found || !count.Equal(value.NewInt(3)) {
		t.Errorf("count = %v, want 3", count)
	}
	items, found := mv.Get(value.NewString("items"))
	if !found {
		t.Fatal("items key missing")
	}
	il, ok := items.(value.ListValue)
	if !ok || il.Len() != 2 {
		t.Fatalf("items = %v, want 2-element list", items)
	}
}

func TestConfigDumpRoundTrip(t *testing.T) {
	m := NewConfigModule()
	original := value.NewMap()
	original.Set(value.NewString("enabled"), value.NewBool(true))
	original.Set(value.NewString("retries"), value.NewInt(5))

	dumped, err := m.Call("dump", []value.Value{original})
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	text, ok := dumped.(value.StringValue)
	if !ok || len(string(text)) == 0 {
		t.Fatalf("dump result = %v, want non-empty string", dumped)
	}

	reloaded, err := m.Call("load", []value.Value{text})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	rm, ok := reloaded.(value.MapValue)
	if !ok {
		t.Fatalf("reload result = %v, want MapValue", reloaded)
	}
	retries, found := rm.Get(value.NewString("retries"))
	if !found || !retries.Equal(value.NewInt(5)) {
		t.Errorf("round-tripped retries = %v, want 5", retries)
	}
}

func TestConfigLoadInvalidYAML(t *testing.T) {
	m := NewConfigModule()
	_, err := m.Call("load", []value.Value{value.NewString("not: valid: yaml: [")})
	if err == nil {
		t.Fatal("loading malformed YAML should error")
	}
}
