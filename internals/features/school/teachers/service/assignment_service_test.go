package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	coursemodel "schoolku_backend/internals/features/school/courses/model"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
)

func TestAssignCourse(t *testing.T) {
	teacher := &teachermodel.TeacherModel{TeacherID: uuid.New()}
	course := &coursemodel.CourseModel{CourseID: uuid.New()}

	if err := AssignCourse(teacher, course); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if course.CourseTeacherID == nil || *course.CourseTeacherID != teacher.TeacherID {
		t.Fatal("course teacher ref not set")
	}
	if !Teaches(teacher, course.CourseID.String()) {
		t.Fatal("teacher set missing the course")
	}
}

func TestAssignCourseTwice(t *testing.T) {
	teacher := &teachermodel.TeacherModel{TeacherID: uuid.New()}
	course := &coursemodel.CourseModel{CourseID: uuid.New()}

	if err := AssignCourse(teacher, course); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	if err := AssignCourse(teacher, course); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
}

func TestUnassignCourse(t *testing.T) {
	teacher := &teachermodel.TeacherModel{TeacherID: uuid.New()}
	course := &coursemodel.CourseModel{CourseID: uuid.New()}
	if err := AssignCourse(teacher, course); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if err := UnassignCourse(teacher, course); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if course.CourseTeacherID != nil {
		t.Fatal("course teacher ref should be cleared")
	}
	if Teaches(teacher, course.CourseID.String()) {
		t.Fatal("teacher set should no longer contain the course")
	}
}

func TestUnassignAbsentCourse(t *testing.T) {
	teacher := &teachermodel.TeacherModel{TeacherID: uuid.New()}
	course := &coursemodel.CourseModel{CourseID: uuid.New()}

	if err := UnassignCourse(teacher, course); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("expected ErrNotAssigned, got %v", err)
	}
}

func TestUnassignKeepsForeignTeacherRef(t *testing.T) {
	// The course points at another teacher; unassigning from this one must
	// not clear that reference.
	teacher := &teachermodel.TeacherModel{TeacherID: uuid.New()}
	other := uuid.New()
	course := &coursemodel.CourseModel{CourseID: uuid.New(), CourseTeacherID: &other}
	teacher.TeacherCourseIDs = append(teacher.TeacherCourseIDs, course.CourseID.String())

	if err := UnassignCourse(teacher, course); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if course.CourseTeacherID == nil || *course.CourseTeacherID != other {
		t.Fatal("foreign teacher ref was clobbered")
	}
}
