package orderid

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var idPattern = regexp.MustCompile(`^CM_\d{13}_[0-9A-Z]{6}$`)

func TestNewIDFormat(t *testing.T) {
	t.Parallel()

	gen := New("cm")
	gen.now = func() time.Time { return time.UnixMilli(1750000000000) }

	id := gen.NewID()
	if !idPattern.MatchString(id) {
		t.Fatalf("id %q does not match expected shape", id)
	}
	if !strings.HasPrefix(id, "CM_1750000000000_") {
		t.Fatalf("id %q missing timestamp segment", id)
	}
	if id != strings.ToUpper(id) {
		t.Fatalf("id %q should be uppercase", id)
	}
}

func TestNewIDDefaultsPrefix(t *testing.T) {
	t.Parallel()

	gen := New("  ")
	if !strings.HasPrefix(gen.NewID(), "CM_") {
		t.Fatalf("blank prefix should fall back to CM")
	}
}

func TestNewIDUniqueness(t *testing.T) {
	t.Parallel()

	gen := New("CM")
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := gen.NewID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
