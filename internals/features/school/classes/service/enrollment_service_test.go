package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	classmodel "schoolku_backend/internals/features/school/classes/model"
	studentmodel "schoolku_backend/internals/features/school/students/model"
)

func newClass(capacity int, studentIDs ...uuid.UUID) *classmodel.ClassModel {
	set := pq.StringArray{}
	for _, id := range studentIDs {
		set = append(set, id.String())
	}
	return &classmodel.ClassModel{
		ClassID:         uuid.New(),
		ClassCapacity:   capacity,
		ClassStudentIDs: set,
	}
}

func newStudent() *studentmodel.StudentModel {
	return &studentmodel.StudentModel{StudentID: uuid.New()}
}

func TestEnroll(t *testing.T) {
	class := newClass(2)
	student := newStudent()

	if err := Enroll(class, student); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if student.StudentClassID == nil || *student.StudentClassID != class.ClassID {
		t.Fatal("student class ref not set")
	}
	if len(class.ClassStudentIDs) != 1 {
		t.Fatalf("class set has %d entries, want 1", len(class.ClassStudentIDs))
	}
}

func TestEnrollTwice(t *testing.T) {
	class := newClass(2)
	student := newStudent()

	if err := Enroll(class, student); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	if err := Enroll(class, student); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Fatalf("expected ErrAlreadyEnrolled, got %v", err)
	}
}

func TestEnrollCapacityEdge(t *testing.T) {
	// capacity 2, one seat taken: one more fits, the next is rejected.
	class := newClass(2, uuid.New())

	if err := Enroll(class, newStudent()); err != nil {
		t.Fatalf("enroll into last seat failed: %v", err)
	}
	if err := Enroll(class, newStudent()); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestUnenroll(t *testing.T) {
	class := newClass(2)
	student := newStudent()
	if err := Enroll(class, student); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if err := Unenroll(class, student); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}
	if student.StudentClassID != nil {
		t.Fatal("student class ref should be cleared")
	}
	if len(class.ClassStudentIDs) != 0 {
		t.Fatal("class set should be empty")
	}
}

func TestUnenrollNotMember(t *testing.T) {
	class := newClass(2)
	if err := Unenroll(class, newStudent()); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}
}
