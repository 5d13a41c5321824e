package process

import (
	"context"
	"testing"
	"time"

	"rigz/value"
)

type stubRunner struct {
	result value.Value
	err    error
}

func (r *stubRunner) RunProcess(scopeID int, args []value.Value) (value.Value, error) {
	return r.result, r.err
}

func TestCooperativeSpawnRequiresDrive(t *testing.T) {
	runner := &stubRunner{result: value.NewInt(99)}
	m := NewManager(runner, ModeCooperative)
	p := m.Spawn(0, nil)

	if p.State() != StateQueued {
		t.Fatalf("cooperative spawn state = %v, want queued", p.State())
	}

	m.Drive(p)
	v, err := p.Result()
	if err != nil {
		t.Fatalf("Result() error: %v", err)
	}
	if !v.Equal(value.NewInt(99)) {
		t.Errorf("Result() = %v, want 99", v)
	}
	if p.State() != StateCompleted {
		t.Errorf("state after drive = %v, want completed", p.State())
	}
}

func TestThreadedSpawnRunsImmediately(t *testing.T) {
	runner := &stubRunner{result: value.NewString("done")}
	m := NewManager(runner, ModeThreaded)
	p := m.Spawn(0, nil)

	v, err := p.Result()
	if err != nil {
		t.Fatalf("Result() error: %v", err)
	}
	if !v.Equal(value.NewString("done")) {
		t.Errorf("Result() = %v, want done", v)
	}
}

func TestSendAndReceive(t *testing.T) {
	runner := &stubRunner{}
	m := NewManager(runner, ModeCooperative)
	p := m.Spawn(0, nil)

	if !m.Send(p.ID, value.NewInt(1)) {
		t.Fatal("Send to a live process should succeed")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, ok := m.Receive(ctx, p.ID)
	if !ok || !got.Equal(value.NewInt(1)) {
		t.Errorf("Receive = %v, ok=%v, want 1/true", got, ok)
	}
}

func TestSendToUnknownProcessFails(t *testing.T) {
	m := NewManager(&stubRunner{}, ModeCooperative)
	if m.Send(999, value.NewInt(1)) {
		t.Error("Send to an unregistered process id should fail")
	}
}

func TestSendDropsOldestWhenMailboxFull(t *testing.T) {
	runner := &stubRunner{}
	m := NewManager(runner, ModeCooperative)
	p := m.Spawn(0, nil)

	for i := 0; i < 64; i++ {
		p.Send(value.NewInt(int64(i)))
	}
	p.Send(value.NewInt(64))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	first, ok := m.Receive(ctx, p.ID)
	if !ok {
		t.Fatal("expected a message")
	}
	if first.Equal(value.NewInt(0)) {
		t.Error("oldest message should have been dropped once the mailbox filled")
	}
}

func TestBroadcastReachesAllProcesses(t *testing.T) {
	m := NewManager(&stubRunner{}, ModeCooperative)
	p1 := m.Spawn(0, nil)
	p2 := m.Spawn(0, nil)

	m.Broadcast(value.NewString("hello"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for _, p := range []*Process{p1, p2} {
		v, ok := m.Receive(ctx, p.ID)
		if !ok || !v.Equal(value.NewString("hello")) {
			t.Errorf("process %d did not receive broadcast: %v/%v", p.ID, v, ok)
		}
	}
}

func TestKillMarksProcessKilled(t *testing.T) {
	m := NewManager(&stubRunner{}, ModeCooperative)
	p := m.Spawn(0, nil)
	if !m.Kill(p.ID) {
		t.Fatal("Kill on a live process should succeed")
	}
	if p.State() != StateKilled {
		t.Errorf("state after kill = %v, want killed", p.State())
	}
}
