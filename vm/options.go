package vm

import "rigz/codec"

// Options configures a VM instance (spec.md §5 "VMOptions"). The three
// booleans pack into a single flag byte on the wire (so a snapshot's
// options field is one byte plus one LE u64), grounded on
// MongooseMoo-barn/vm/vm.go's NewVM constructor defaults (TickLimit as a
// plain field) generalized into a real options struct per the spec, since
// the teacher hardcodes its one tick-limit knob rather than bundling a set
// of flags.
type Options struct {
	EnableLogging          bool
	DisableModules         bool
	DisableVariableCleanup bool
	MaxDepth               uint64
}

func DefaultOptions() Options {
	return Options{MaxDepth: 1024}
}

const (
	flagEnableLogging          = 1 << 0
	flagDisableModules         = 1 << 1
	flagDisableVariableCleanup = 1 << 2
)

func (o Options) ToBytes() []byte {
	var flags byte
	if o.EnableLogging {
		flags |= flagEnableLogging
	}
	if o.DisableModules {
		flags |= flagDisableModules
	}
	if o.DisableVariableCleanup {
		flags |= flagDisableVariableCleanup
	}
	out := []byte{flags}
	return codec.PutUint64(out, o.MaxDepth)
}

func OptionsFromBytes(c *codec.Cursor) (Options, error) {
	flags, err := c.Byte("vm.Options.flags")
	if err != nil {
		return Options{}, err
	}
	maxDepth, err := c.Uint64("vm.Options.maxDepth")
	if err != nil {
		return Options{}, err
	}
	return Options{
		EnableLogging:          flags&flagEnableLogging != 0,
		DisableModules:         flags&flagDisableModules != 0,
		DisableVariableCleanup: flags&flagDisableVariableCleanup != 0,
		MaxDepth:               maxDepth,
	}, nil
}
