package model

import (
	"testing"
	"time"
)

func TestTimestampScan(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 2, 12, 10, 0, 0, 123456000, time.Local)
	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"iso text", "2026-02-12T10:00:00.123456", local},
		{"iso bytes", []byte("2026-02-12T10:00:00.123456"), local},
		{"iso without fraction", "2026-02-12T10:00:00", local.Truncate(time.Second)},
		{"space separated", "2026-02-12 10:00:00.123456", local},
		{"driver format", "2026-02-12 10:00:00.123456+02:00", time.Date(2026, 2, 12, 8, 0, 0, 123456000, time.UTC)},
		{"time value", local, local},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ts Timestamp
			if err := ts.Scan(tt.value); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, ts.Time)
			}
		})
	}
}

func TestTimestampScanRejectsGarbage(t *testing.T) {
	t.Parallel()

	var ts Timestamp
	if err := ts.Scan("yesterday"); err == nil {
		t.Fatal("expected error for unparsable text")
	}
	if err := ts.Scan(42); err == nil {
		t.Fatal("expected error for an integer")
	}
}

func TestTimestampValue(t *testing.T) {
	t.Parallel()

	v, err := Timestamp{}.Value()
	if err != nil || v != nil {
		t.Fatalf("zero timestamp should store NULL, got %v (%v)", v, err)
	}

	whole := time.Date(2026, 2, 12, 10, 0, 0, 0, time.Local)
	if v, _ := NewTimestamp(whole).Value(); v != "2026-02-12T10:00:00" {
		t.Fatalf("unexpected value %v", v)
	}
	micro := whole.Add(500 * time.Millisecond)
	if v, _ := NewTimestamp(micro).Value(); v != "2026-02-12T10:00:00.500000" {
		t.Fatalf("unexpected value %v", v)
	}

	var back Timestamp
	s, _ := NewTimestamp(micro).Value()
	if err := back.Scan(s); err != nil || !back.Equal(micro) {
		t.Fatalf("stored form does not read back: %v (%v)", back.Time, err)
	}
}
