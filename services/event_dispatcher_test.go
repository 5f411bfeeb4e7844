package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/firedragon-ledger/interfaces"
	"github.com/ZanzyTHEbar/firedragon-ledger/internal"
)

type recordingSink struct {
	mu     sync.Mutex
	events []*interfaces.Event
	fail   map[interfaces.EventType]bool
}

func (s *recordingSink) Publish(_ context.Context, event *interfaces.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail[event.Type] {
		return errors.New("sink unavailable")
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) types() []interfaces.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]interfaces.EventType, 0, len(s.events))
	for _, event := range s.events {
		types = append(types, event.Type)
	}
	return types
}

func discardLogger() *internal.Logger {
	return internal.NewLoggerWithWriter(io.Discard, internal.LogLevelError, nil)
}

func TestEventDispatcher(t *testing.T) {
	tests := []struct {
		name       string
		publish    []interfaces.EventType
		fail       map[interfaces.EventType]bool
		want       []interfaces.EventType
		wantErrors int
	}{
		{
			name:    "Delivers in order",
			publish: []interfaces.EventType{interfaces.EventTypeTransactionDeleted, interfaces.EventTypeRepeatingDeleted, interfaces.EventTypeAccountPurged},
			want:    []interfaces.EventType{interfaces.EventTypeTransactionDeleted, interfaces.EventTypeRepeatingDeleted, interfaces.EventTypeAccountPurged},
		},
		{
			name:       "Failures are counted and skipped",
			publish:    []interfaces.EventType{interfaces.EventTypeTransactionDeleted, interfaces.EventTypeLedgerReset, interfaces.EventTypeAccountDeleted},
			fail:       map[interfaces.EventType]bool{interfaces.EventTypeLedgerReset: true},
			want:       []interfaces.EventType{interfaces.EventTypeTransactionDeleted, interfaces.EventTypeAccountDeleted},
			wantErrors: 1,
		},
		{
			name: "Nothing published",
			want: []interfaces.EventType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{fail: tt.fail}
			dispatcher, err := NewEventDispatcher(sink, discardLogger())
			if err != nil {
				t.Fatalf("NewEventDispatcher() unexpected error: %v", err)
			}

			for _, eventType := range tt.publish {
				if err := dispatcher.Publish(context.Background(), interfaces.NewEvent(eventType, "test")); err != nil {
					t.Fatalf("Publish(%s) unexpected error: %v", eventType, err)
				}
			}

			// Replies queue behind the events sent before them
			status, err := dispatcher.Status(time.Second)
			if err != nil {
				t.Fatalf("Status() unexpected error: %v", err)
			}
			if status.Status != ServiceStatusRunning {
				t.Errorf("Status = %s, want %s", status.Status, ServiceStatusRunning)
			}
			if status.Handled != len(tt.publish) {
				t.Errorf("Handled = %d, want %d", status.Handled, len(tt.publish))
			}
			if status.ErrorCount != tt.wantErrors {
				t.Errorf("ErrorCount = %d, want %d", status.ErrorCount, tt.wantErrors)
			}

			if err := dispatcher.Close(); err != nil {
				t.Fatalf("Close() unexpected error: %v", err)
			}

			got := sink.types()
			if len(got) != len(tt.want) {
				t.Fatalf("delivered %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEventDispatcher_Closed(t *testing.T) {
	sink := &recordingSink{}
	dispatcher, err := NewEventDispatcher(sink, discardLogger())
	if err != nil {
		t.Fatalf("NewEventDispatcher() unexpected error: %v", err)
	}

	if err := dispatcher.Close(); err != nil {
		t.Fatalf("Close() unexpected error: %v", err)
	}
	if err := dispatcher.Close(); err != nil {
		t.Errorf("second Close() unexpected error: %v", err)
	}

	if err := dispatcher.Publish(context.Background(), interfaces.NewEvent(interfaces.EventTypeLedgerReset, "test")); err == nil {
		t.Error("Publish() after Close() should fail")
	}
	if got := sink.types(); len(got) != 0 {
		t.Errorf("delivered %v after close", got)
	}
}

func TestEventDispatcher_ConcurrentPublishAndClose(t *testing.T) {
	sink := &recordingSink{}
	dispatcher, err := NewEventDispatcher(sink, discardLogger())
	if err != nil {
		t.Fatalf("NewEventDispatcher() unexpected error: %v", err)
	}

	const publishers = 8
	var wg sync.WaitGroup
	for i := 0; i < publishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				// Errors are expected once Close has started
				_ = dispatcher.Publish(context.Background(), interfaces.NewEvent(interfaces.EventTypeTransactionDeleted, "test"))
			}
		}()
	}

	closeErrs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() { closeErrs <- dispatcher.Close() }()
	}
	for i := 0; i < 2; i++ {
		if err := <-closeErrs; err != nil {
			t.Errorf("Close() unexpected error: %v", err)
		}
	}
	wg.Wait()

	if err := dispatcher.Publish(context.Background(), interfaces.NewEvent(interfaces.EventTypeLedgerReset, "test")); err == nil {
		t.Error("Publish() after Close() should fail")
	}
	if got := len(sink.types()); got > publishers*50 {
		t.Errorf("delivered %d events, more than were published", got)
	}
}
