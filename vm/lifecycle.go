package vm

// LifecycleKind tags what drives a Scope beyond ordinary direct calls, per
// spec.md §4.3/§4.5: a scope can be an event handler (On), a post-stage
// hook (After), a memoized pure function (Memo), a test case (Test), or a
// composite type constructor (Composite). Grounded on
// MongooseMoo-barn/task/task.go's TaskKind enum shape (a small closed set
// of origin tags attached to a unit of execution), generalized from task
// origin to scope purpose since this engine has no separate Task type —
// a Scope already is the unit vm.VM schedules.
type LifecycleKind int

const (
	LifecycleNone LifecycleKind = iota
	LifecycleOn
	LifecycleAfter
	LifecycleMemo
	LifecycleTest
	LifecycleComposite
)

func (k LifecycleKind) String() string {
	switch k {
	case LifecycleOn:
		return "On"
	case LifecycleAfter:
		return "After"
	case LifecycleMemo:
		return "Memo"
	case LifecycleTest:
		return "Test"
	case LifecycleComposite:
		return "Composite"
	default:
		return "None"
	}
}

// Stage names a point in the process lifecycle an After-scope hooks, e.g.
// "spawn", "exit". Kept as a plain string (rather than a closed enum) so
// modules can register their own stages without a vm package change.
type Stage string

// Lifecycle is the full tag attached to a Scope: a kind, plus whatever
// parameter that kind needs (an event/stage name for On/After, nothing
// extra for Memo/Test, a type name for Composite).
type Lifecycle struct {
	Kind LifecycleKind
	Name string // event name (On), stage (After), or type name (Composite)
}

func NoLifecycle() Lifecycle { return Lifecycle{Kind: LifecycleNone} }
func OnEvent(name string) Lifecycle {
	return Lifecycle{Kind: LifecycleOn, Name: name}
}
func AfterStage(stage Stage) Lifecycle {
	return Lifecycle{Kind: LifecycleAfter, Name: string(stage)}
}
func MemoLifecycle() Lifecycle { return Lifecycle{Kind: LifecycleMemo} }
func TestLifecycle() Lifecycle { return Lifecycle{Kind: LifecycleTest} }
func CompositeLifecycle(typeName string) Lifecycle {
	return Lifecycle{Kind: LifecycleComposite, Name: typeName}
}

// lifecycleDiscriminant maps a LifecycleKind to its single-byte snapshot
// discriminant, internal to this implementation: the byte is the
// LifecycleKind's own iota value (None=0, On=1, After=2, Memo=3, Test=4,
// Composite=5).
func (k LifecycleKind) discriminant() byte { return byte(k) }
