package dto

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func validSession() SessionRequest {
	return SessionRequest{
		Day:       "monday",
		StartTime: "08:00",
		EndTime:   "10:00",
		CourseID:  uuid.NewString(),
		TeacherID: uuid.NewString(),
		Room:      "B204",
	}
}

func TestSessionRequestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SessionRequest)
		wantOK bool
	}{
		{"valid", func(r *SessionRequest) {}, true},
		{"saturday allowed", func(r *SessionRequest) { r.Day = "saturday" }, true},
		{"sunday rejected", func(r *SessionRequest) { r.Day = "sunday" }, false},
		{"unknown day", func(r *SessionRequest) { r.Day = "funday" }, false},
		{"bad time format", func(r *SessionRequest) { r.StartTime = "8h00" }, false},
		{"seconds rejected", func(r *SessionRequest) { r.StartTime = "08:00:00" }, false},
		{"out of range time", func(r *SessionRequest) { r.EndTime = "25:00" }, false},
		{"missing course", func(r *SessionRequest) { r.CourseID = "" }, false},
		{"non-uuid teacher", func(r *SessionRequest) { r.TeacherID = "42" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validSession()
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSessionRequestToModelRejectsInvertedTimes(t *testing.T) {
	r := validSession()
	r.StartTime = "10:00"
	r.EndTime = "08:00"

	if _, err := r.ToModel(uuid.New()); !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("expected ErrEndNotAfterStart, got %v", err)
	}

	r.EndTime = "10:00"
	if _, err := r.ToModel(uuid.New()); !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("zero-length session: expected ErrEndNotAfterStart, got %v", err)
	}
}

func TestTimetableCreateRequestValidate(t *testing.T) {
	base := TimetableCreateRequest{
		ClassID:  uuid.NewString(),
		Week:     1,
		Year:     2026,
		Sessions: []SessionRequest{validSession()},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TimetableCreateRequest)
	}{
		{"week zero", func(r *TimetableCreateRequest) { r.Week = 0 }},
		{"week 54", func(r *TimetableCreateRequest) { r.Week = 54 }},
		{"year too old", func(r *TimetableCreateRequest) { r.Year = 1999 }},
		{"missing class", func(r *TimetableCreateRequest) { r.ClassID = "" }},
		{"invalid nested session", func(r *TimetableCreateRequest) { r.Sessions[0].Day = "sunday" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			r.Sessions = []SessionRequest{validSession()}
			tc.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
