package vm

import (
	"rigz/codec"
	"rigz/value"
)

// callMemoized implements spec.md §4.6: a Memo-lifecycle scope is keyed by
// its resolved argument values (their ToBytes encoding, a cheap structural
// key) and only actually runs once per distinct key.
func (vm *VM) callMemoized(scopeID int, args []value.Value, parentFrame int) (value.Value, error) {
	key := memoKey(args)
	cache, ok := vm.memo[scopeID]
	if !ok {
		cache = make(map[string]value.Value)
		vm.memo[scopeID] = cache
	}
	if v, ok := cache[key]; ok {
		return v, nil
	}
	v, err := vm.callScope(scopeID, args, parentFrame)
	if err != nil {
		return value.None, err
	}
	if _, isErr := v.(value.ErrorValue); !isErr {
		cache[key] = v
	}
	return v, nil
}

func memoKey(args []value.Value) string {
	var out []byte
	out = codec.PutUint64(out, uint64(len(args)))
	for _, a := range args {
		out = append(out, a.ToBytes()...)
	}
	return string(out)
}
