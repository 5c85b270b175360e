package mcpserver

import (
	"context"
	"testing"
	"time"
)

type nullEmitter struct{}

func (nullEmitter) Emit(context.Context, string, any) {}

// approveEmitter answers every approval request as soon as it is emitted.
type approveEmitter struct {
	queue   *ApprovalQueue
	approve bool
}

func (e *approveEmitter) Emit(_ context.Context, event string, data any) {
	if event != "mcp:approval-required" {
		return
	}
	action := data.(PendingAction)
	go func() {
		if e.approve {
			e.queue.Approve(action.ID)
		} else {
			e.queue.Reject(action.ID)
		}
	}()
}

func TestApprovalQueue_Approve(t *testing.T) {
	emitter := &approveEmitter{approve: true}
	q := NewApprovalQueue(context.Background(), emitter)
	emitter.queue = q

	ok, err := q.Request("clear_board", "Clear everything")
	if !ok || err != nil {
		t.Fatalf("approved request: ok=%v err=%v", ok, err)
	}
}

func TestApprovalQueue_Reject(t *testing.T) {
	emitter := &approveEmitter{approve: false}
	q := NewApprovalQueue(context.Background(), emitter)
	emitter.queue = q

	ok, err := q.Request("delete_element", "Delete e1")
	if ok || err == nil {
		t.Fatalf("rejected request: ok=%v err=%v", ok, err)
	}
}

func TestApprovalQueue_Timeout(t *testing.T) {
	q := NewApprovalQueue(context.Background(), nullEmitter{})
	q.timeout = 50 * time.Millisecond

	ok, err := q.Request("clear_board", "Clear everything")
	if ok || err == nil {
		t.Fatal("unanswered request did not time out")
	}
}

func TestApprovalQueue_AutoApprove(t *testing.T) {
	q := NewApprovalQueue(context.Background(), nullEmitter{})
	q.AutoApprove()

	ok, err := q.Request("clear_board", "Clear everything")
	if !ok || err != nil {
		t.Fatalf("auto-approved request: ok=%v err=%v", ok, err)
	}
}
