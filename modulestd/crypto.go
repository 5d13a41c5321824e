// Package modulestd implements the engine's standard module library: the
// domain-stack dependencies this port wires in beyond the teacher's
// direct concerns (crypto digests, declarative config). Each module
// satisfies module.Module and is meant to be registered into a
// module.Registry before running scripts that reference it.
package modulestd

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/ripemd160"

	"rigz/module"
	"rigz/value"
)

// CryptoModule exposes hashing digests as a `crypto` module, grounded on
// MongooseMoo-barn/builtins/crypto.go's named-hash dispatch (a switch from
// algorithm name to `hash.Hash` constructor, including its ripemd160.New
// case) — the same switch, narrowed to the digest functions that make
// sense as pure `crypto.digest(name, data)` calls rather than the
// teacher's stateful incremental-hash builtins.
type CryptoModule struct {
	module.BaseModule
}

func NewCryptoModule() *CryptoModule {
	return &CryptoModule{BaseModule: module.BaseModule{ModuleName: "crypto"}}
}

func hasherFor(name string) (func() hash.Hash, bool) {
	switch name {
	case "md5":
		return md5.New, true
	case "sha1":
		return sha1.New, true
	case "sha256":
		return sha256.New, true
	case "sha512":
		return sha512.New, true
	case "ripemd160":
		return ripemd160.New, true
	default:
		return nil, false
	}
}

func (m *CryptoModule) Call(fn string, args []value.Value) (value.Value, error) {
	switch fn {
	case "digest":
		if len(args) != 2 {
			return nil, fmt.Errorf("digest(algorithm, data) takes 2 arguments, got %d", len(args))
		}
		algo, ok := args[0].(value.StringValue)
		if !ok {
			return nil, fmt.Errorf("digest: algorithm must be a String")
		}
		newHash, ok := hasherFor(string(algo))
		if !ok {
			return nil, fmt.Errorf("digest: unsupported algorithm %q", algo)
		}
		h := newHash()
		h.Write([]byte(args[1].String()))
		return value.NewString(hex.EncodeToString(h.Sum(nil))), nil
	case "supported":
		names := []string{"md5", "sha1", "sha256", "sha512", "ripemd160"}
		items := make([]value.Value, len(names))
		for i, n := range names {
			items[i] = value.NewString(n)
		}
		return value.NewList(items...), nil
	default:
		return nil, fmt.Errorf("crypto has no function %q", fn)
	}
}
