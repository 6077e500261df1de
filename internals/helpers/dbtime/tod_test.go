package dbtime

import "testing"

func TestParse(t *testing.T) {
	tod, err := Parse("09:30")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if tod.Hour() != 9 || tod.Minute() != 30 {
		t.Fatalf("expected 09:30, got %s", tod.Format("15:04"))
	}

	tod, err = Parse("23:59:59")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if tod.Second() != 59 {
		t.Fatalf("expected seconds to be kept, got %s", tod.Format("15:04:05"))
	}

	if _, err := Parse("25:00"); err == nil {
		t.Fatalf("expected error for hour out of range")
	}
	if _, err := Parse("not-a-time"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestCompare(t *testing.T) {
	a, _ := Parse("09:00")
	b, _ := Parse("10:00")

	if !a.Before(b) {
		t.Fatalf("expected 09:00 before 10:00")
	}
	if !b.After(a) {
		t.Fatalf("expected 10:00 after 09:00")
	}
	if a.Before(a) || a.After(a) {
		t.Fatalf("expected equal times to be neither before nor after")
	}
}

func TestValueAndJSON(t *testing.T) {
	tod, _ := Parse("08:05")

	v, err := tod.Value()
	if err != nil {
		t.Fatalf("value error: %v", err)
	}
	if v != "08:05:00" {
		t.Fatalf("expected 08:05:00, got %v", v)
	}

	b, err := tod.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(b) != `"08:05"` {
		t.Fatalf("expected \"08:05\", got %s", b)
	}

	var back Tod
	if err := back.UnmarshalJSON([]byte(`"08:05"`)); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if back.Hour() != 8 || back.Minute() != 5 {
		t.Fatalf("round trip mismatch: %s", back.Format("15:04"))
	}
}

func TestScan(t *testing.T) {
	var tod Tod
	if err := tod.Scan("14:45:00"); err != nil {
		t.Fatalf("scan string error: %v", err)
	}
	if tod.Hour() != 14 || tod.Minute() != 45 {
		t.Fatalf("scan mismatch: %s", tod.Format("15:04"))
	}

	if err := tod.Scan(12345); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
