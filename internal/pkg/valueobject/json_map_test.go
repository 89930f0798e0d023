package valueobject

import (
	"errors"
	"testing"
)

func TestJSONMapScan(t *testing.T) {
	t.Run("nil scans to empty map", func(t *testing.T) {
		var m JSONMap
		if err := m.Scan(nil); err != nil {
			t.Fatalf("Scan(nil) error = %v", err)
		}
		if m == nil || len(m) != 0 {
			t.Errorf("Scan(nil) = %v, want empty map", m)
		}
	})

	t.Run("bytes decode", func(t *testing.T) {
		var m JSONMap
		if err := m.Scan([]byte(`{"room_id":7,"title":"Lab 3"}`)); err != nil {
			t.Fatalf("Scan error = %v", err)
		}
		if got := m.GetInt64("room_id"); got != 7 {
			t.Errorf("GetInt64(room_id) = %d, want 7", got)
		}
		if got := m.GetString("title"); got != "Lab 3" {
			t.Errorf("GetString(title) = %q, want %q", got, "Lab 3")
		}
	})

	t.Run("string decodes the same way", func(t *testing.T) {
		var m JSONMap
		if err := m.Scan(`{"read":true}`); err != nil {
			t.Fatalf("Scan error = %v", err)
		}
		if !m.GetBool("read") {
			t.Error("GetBool(read) = false, want true")
		}
	})

	t.Run("pre-decoded map is adopted", func(t *testing.T) {
		var m JSONMap
		if err := m.Scan(map[string]any{"count": 2}); err != nil {
			t.Fatalf("Scan error = %v", err)
		}
		if got := m.GetInt("count"); got != 2 {
			t.Errorf("GetInt(count) = %d, want 2", got)
		}
	})

	t.Run("unsupported type is rejected", func(t *testing.T) {
		var m JSONMap
		if err := m.Scan(42); !errors.Is(err, ErrScanValueNotBytes) {
			t.Errorf("Scan(42) error = %v, want ErrScanValueNotBytes", err)
		}
	})
}

func TestJSONMapAccessors(t *testing.T) {
	m := JSONMap{"n": float64(3)}

	if got := m.GetInt("n"); got != 3 {
		t.Errorf("GetInt(n) = %d, want 3", got)
	}
	if got := m.GetInt("missing"); got != 0 {
		t.Errorf("GetInt(missing) = %d, want 0", got)
	}

	m.SetIfAbsent("n", float64(9))
	if got := m.GetInt("n"); got != 3 {
		t.Errorf("SetIfAbsent overwrote existing key, got %d", got)
	}
	m.SetIfAbsent("added", "x")
	if !m.Has("added") {
		t.Error("SetIfAbsent did not add missing key")
	}
}
