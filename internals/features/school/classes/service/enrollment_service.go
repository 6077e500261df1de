// Package service holds the enrollment rules. The functions mutate loaded
// models in memory only; controllers persist both sides inside one
// transaction.
package service

import (
	"errors"

	classmodel "schoolku_backend/internals/features/school/classes/model"
	studentmodel "schoolku_backend/internals/features/school/students/model"
	"schoolku_backend/internals/helpers/refset"
)

var (
	ErrAlreadyEnrolled  = errors.New("student is already enrolled in this class")
	ErrNotEnrolled      = errors.New("student is not enrolled in this class")
	ErrCapacityExceeded = errors.New("class capacity reached")
)

// CanEnroll checks capacity without mutating anything. Used when a student
// is created directly into a class.
func CanEnroll(class *classmodel.ClassModel) error {
	if len(class.ClassStudentIDs) >= class.ClassCapacity {
		return ErrCapacityExceeded
	}
	return nil
}

// Enroll adds the student to the class set and points the student at the
// class. Capacity is checked before any mutation.
func Enroll(class *classmodel.ClassModel, student *studentmodel.StudentModel) error {
	if refset.Contains(class.ClassStudentIDs, student.StudentID) {
		return ErrAlreadyEnrolled
	}
	if err := CanEnroll(class); err != nil {
		return err
	}
	class.ClassStudentIDs = refset.Add(class.ClassStudentIDs, student.StudentID)
	student.StudentClassID = &class.ClassID
	return nil
}

// Unenroll removes the student from the class set and clears its class ref.
func Unenroll(class *classmodel.ClassModel, student *studentmodel.StudentModel) error {
	if !refset.Contains(class.ClassStudentIDs, student.StudentID) {
		return ErrNotEnrolled
	}
	class.ClassStudentIDs = refset.Remove(class.ClassStudentIDs, student.StudentID)
	student.StudentClassID = nil
	return nil
}
