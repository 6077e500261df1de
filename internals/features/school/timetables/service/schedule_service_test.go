package service

import (
	"errors"
	"testing"

	timetablemodel "schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/helpers/dbtime"
)

func session(t *testing.T, day, start, end string) timetablemodel.TimetableSessionModel {
	t.Helper()
	s, err := dbtime.Parse(start)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	e, err := dbtime.Parse(end)
	if err != nil {
		t.Fatalf("bad end %q: %v", end, err)
	}
	return timetablemodel.TimetableSessionModel{
		SessionDay:       day,
		SessionStartTime: s,
		SessionEndTime:   e,
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		dayA, startA, endA     string
		dayB, startB, endB     string
		want                   bool
	}{
		{"identical", "monday", "08:00", "10:00", "monday", "08:00", "10:00", true},
		{"contained", "monday", "08:00", "12:00", "monday", "09:00", "10:00", true},
		{"partial tail", "monday", "08:00", "10:00", "monday", "09:00", "11:00", true},
		{"partial head", "monday", "09:00", "11:00", "monday", "08:00", "10:00", true},
		{"touching end to start", "monday", "08:00", "10:00", "monday", "10:00", "12:00", false},
		{"touching start to end", "monday", "10:00", "12:00", "monday", "08:00", "10:00", false},
		{"disjoint", "monday", "08:00", "09:00", "monday", "10:00", "11:00", false},
		{"same slot other day", "monday", "08:00", "10:00", "tuesday", "08:00", "10:00", false},
		{"one minute overlap", "friday", "08:00", "10:01", "friday", "10:00", "12:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := session(t, tc.dayA, tc.startA, tc.endA)
			b := session(t, tc.dayB, tc.startB, tc.endB)
			if got := Overlaps(&a, &b); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			// the relation is symmetric
			if got := Overlaps(&b, &a); got != tc.want {
				t.Fatalf("Overlaps reversed = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCheckConflict(t *testing.T) {
	existing := []timetablemodel.TimetableSessionModel{
		session(t, "monday", "08:00", "10:00"),
		session(t, "wednesday", "14:00", "16:00"),
	}

	ok := session(t, "monday", "10:00", "12:00")
	if err := CheckConflict(existing, &ok); err != nil {
		t.Fatalf("non-conflicting session rejected: %v", err)
	}

	bad := session(t, "wednesday", "15:00", "17:00")
	if err := CheckConflict(existing, &bad); !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("expected ErrScheduleConflict, got %v", err)
	}
}
