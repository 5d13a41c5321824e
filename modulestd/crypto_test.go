package modulestd

import (
	"testing"

	"rigz/value"
)

func TestCryptoDigestSHA256(t *testing.T) {
	m := NewCryptoModule()
	v, err := m.Call("digest", []value.Value{value.NewString("sha256"), value.NewString("abc")})
	if err != nil {
		t.Fatalf("digest failed: %v", err)
	}
	got, ok := v.(value.StringValue)
	if !ok || len(string(got)) != 64 {
		t.Fatalf("digest(sha256, abc) = %v, want a 64-hex-char string", v)
	}
}

func TestCryptoDigestUnsupportedAlgorithm(t *testing.T) {
	m := NewCryptoModule()
	_, err := m.Call("digest", []value.Value{value.NewString("not-an-algo"), value.NewString("x")})
	if err == nil {
		t.Fatal("digest with an unsupported algorithm should error")
	}
}

func TestCryptoDigestIsDeterministic(t *testing.T) {
	m := NewCryptoModule()
	a, _ := m.Call("digest", []value.Value{value.NewString("ripemd160"), value.NewString("hello")})
	b, _ := m.Call("digest", []value.Value{value.NewString("ripemd160"), value.NewString("hello")})
	if !a.Equal(b) {
		t.Errorf("digest should be deterministic: %v != %v", a, b)
	}
}

func TestCryptoSupportedListsAlgorithms(t *testing.T) {
	m := NewCryptoModule()
	v, err := m.Call("supported", nil)
	if err != nil {
		t.Fatalf("supported failed: %v", err)
	}
	l, ok := v.(value.ListValue)
	if !ok || l.Len() == 0 {
		t.Fatalf("supported() = %v, want a non-empty list", v)
	}
}

func TestCryptoUnknownFunction(t *testing.T) {
	m := NewCryptoModule()
	if _, err := m.Call("bogus", nil); err == nil {
		t.Fatal("calling an unknown crypto function should error")
	}
}
