package process

import (
	"context"
	"sync"

	"rigz/value"
)

// Runner is the narrow interface a process.Manager drives without
// importing the vm package, the same circular-import workaround
// MongooseMoo-barn uses for task.ForkCreator (task.Task creates forked
// tasks via an interface implemented by the scheduler, rather than
// importing it). vm.VM implements Runner.
type Runner interface {
	RunProcess(scopeID int, args []value.Value) (value.Value, error)
}

// Manager tracks every live Process, grounded on
// MongooseMoo-barn/task/manager.go's map-of-tasks-plus-mutex shape.
type Manager struct {
	mu         sync.Mutex
	procs      map[int64]*Process
	nextID     int64
	runner     Runner
	mode       Mode
	eventProcs map[string][]int64
}

func NewManager(runner Runner, mode Mode) *Manager {
	return &Manager{
		procs:      make(map[int64]*Process),
		runner:     runner,
		mode:       mode,
		eventProcs: make(map[string][]int64),
	}
}

// RegisterOn creates the persistent process backing an On-lifecycle scope,
// per spec.md §4.7 ("created eagerly for every On-tagged scope at VM run
// start"). Unlike a Spawned process, it is never driven to a single
// Result(): SendEvent re-runs its scope once per matching dispatch and
// posts the fresh result onto its own mailbox, so a caller can retrieve it
// with Receive(pid) the same way it would any other process's reply.
func (m *Manager) RegisterOn(scopeID int, event string) *Process {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	p := newProcess(id, scopeID, nil, m.mode, 64)
	p.setState(StateRunning)
	m.procs[id] = p
	m.eventProcs[event] = append(m.eventProcs[event], id)
	m.mu.Unlock()
	return p
}

// SendEvent implements the name-dispatch half of the `send` instruction
// (spec.md §4.3, §4.7): it runs every On process registered for event with
// payload as its arguments and posts each result to that process's own
// mailbox. It reports the pids it dispatched to, or ok=false if no process
// is registered for event (the caller pushes an error value for that
// case).
func (m *Manager) SendEvent(event string, payload []value.Value) (pids []int64, ok bool) {
	m.mu.Lock()
	ids := append([]int64(nil), m.eventProcs[event]...)
	m.mu.Unlock()
	if len(ids) == 0 {
		return nil, false
	}
	for _, id := range ids {
		p, found := m.Get(id)
		if !found {
			continue
		}
		v, err := m.runner.RunProcess(p.ScopeID, payload)
		if err != nil {
			v = value.Runtimef("on %q handler failed: %v", event, err)
		}
		p.Send(v)
	}
	return ids, true
}

// Spawn registers a new process for scopeID. In ModeThreaded it starts
// running immediately on its own goroutine; in ModeCooperative the caller
// must invoke Drive to advance it.
func (m *Manager) Spawn(scopeID int, args []value.Value) *Process {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	p := newProcess(id, scopeID, args, m.mode, 64)
	m.procs[id] = p
	m.mu.Unlock()

	if m.mode == ModeThreaded {
		p.setState(StateRunning)
		go func() {
			v, err := m.runner.RunProcess(p.ScopeID, p.Args)
			p.finish(v, err)
		}()
	} else {
		p.setState(StateQueued)
	}
	return p
}

// Drive single-steps a cooperative process to completion on the caller's
// goroutine. It is a no-op (returns immediately) for a Threaded process,
// since those already run independently.
func (m *Manager) Drive(p *Process) {
	if p.mode != ModeCooperative {
		return
	}
	if p.State() != StateQueued {
		return
	}
	p.setState(StateRunning)
	v, err := m.runner.RunProcess(p.ScopeID, p.Args)
	p.finish(v, err)
}

func (m *Manager) Get(id int64) (*Process, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.procs[id]
	return p, ok
}

func (m *Manager) All() []*Process {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Process, 0, len(m.procs))
	for _, p := range m.procs {
		out = append(out, p)
	}
	return out
}

// Send delivers v to process id's mailbox, the `send` instruction's
// implementation.
func (m *Manager) Send(id int64, v value.Value) bool {
	p, ok := m.Get(id)
	if !ok {
		return false
	}
	p.Send(v)
	return true
}

// Receive blocks on process id's mailbox until a message arrives or ctx is
// done; it returns false at once when no process has that id.
func (m *Manager) Receive(ctx context.Context, id int64) (value.Value, bool) {
	p, ok := m.Get(id)
	if !ok {
		return value.None, false
	}
	return p.Receive(ctx)
}

// Broadcast delivers v to every live process's mailbox, the `broadcast`
// instruction's implementation.
func (m *Manager) Broadcast(v value.Value) {
	m.mu.Lock()
	procs := make([]*Process, 0, len(m.procs))
	for _, p := range m.procs {
		procs = append(procs, p)
	}
	m.mu.Unlock()
	for _, p := range procs {
		p.Send(v)
	}
}

// Kill marks a process dead. A Threaded process cannot be forcibly
// preempted (Go has no goroutine cancellation primitive beyond context),
// so Kill only marks it killed and calls p.cancel when one is set; the
// Runner is given no context, so a scope already running is not
// interrupted and runs to its end.
func (m *Manager) Kill(id int64) bool {
	p, ok := m.Get(id)
	if !ok {
		return false
	}
	if p.cancel != nil {
		p.cancel()
	}
	p.setState(StateKilled)
	return true
}

func (m *Manager) Remove(id int64) {
	m.mu.Lock()
	delete(m.procs, id)
	m.mu.Unlock()
}
