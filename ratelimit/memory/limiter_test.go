package memorylimiter

import (
	"testing"
	"time"
)

func TestAllowNamed_EnforcesLimit(t *testing.T) {
	l := New(map[string]Limit{
		"todos:create": {Limit: 2, Window: time.Minute},
	})

	for i := 0; i < 2; i++ {
		ok, err := l.AllowNamed("todos:create", "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, err := l.AllowNamed("todos:create", "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("third request should be denied")
	}
}

func TestAllowNamed_KeysIndependent(t *testing.T) {
	l := New(map[string]Limit{
		"default": {Limit: 1, Window: time.Minute},
	})

	if ok, _ := l.AllowNamed("todos:list", "u1"); !ok {
		t.Fatal("first u1 request should be allowed")
	}
	if ok, _ := l.AllowNamed("todos:list", "u2"); !ok {
		t.Fatal("u2 should have its own bucket")
	}
	if ok, _ := l.AllowNamed("todos:create", "u1"); !ok {
		t.Fatal("different bucket should not share u1's count")
	}
}

func TestAllowNamed_RequiresBucketAndKey(t *testing.T) {
	l := New(nil)

	if ok, err := l.AllowNamed("", "u1"); err == nil || ok {
		t.Fatal("empty bucket must error")
	}
	if ok, err := l.AllowNamed("todos:list", ""); err == nil || ok {
		t.Fatal("empty key must error")
	}
}
