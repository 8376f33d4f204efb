package memory

import (
	"context"
	"testing"
)

func TestLocalStorage_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewLocalStorage()

	if _, ok, err := s.Get(ctx, "root"); err != nil || ok {
		t.Fatalf("Get on empty storage = ok %v, err %v", ok, err)
	}

	value := []byte(`{"version":1}`)
	if err := s.Set(ctx, "root", value); err != nil {
		t.Fatalf("Set error = %v", err)
	}
	value[0] = 'X'

	got, ok, err := s.Get(ctx, "root")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if string(got) != `{"version":1}` {
		t.Errorf("Get = %s, stored value was aliased", got)
	}

	if err := s.Remove(ctx, "root"); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "root"); ok {
		t.Error("value still present after Remove")
	}
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewLocalStorage().Set(ctx, "root", []byte("x")); err == nil {
		t.Fatal("Set with canceled context should fail")
	}
}
