// Package service holds the teacher/course assignment rules. Functions
// mutate loaded models in memory; controllers persist both sides in one
// transaction.
package service

import (
	"errors"

	coursemodel "schoolku_backend/internals/features/school/courses/model"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
	"schoolku_backend/internals/helpers/refset"
)

var (
	ErrAlreadyAssigned = errors.New("course is already assigned to this teacher")
	ErrNotAssigned     = errors.New("course is not assigned to this teacher")
)

// AssignCourse adds the course to the teacher's set and points the course
// at the teacher.
func AssignCourse(teacher *teachermodel.TeacherModel, course *coursemodel.CourseModel) error {
	if refset.Contains(teacher.TeacherCourseIDs, course.CourseID) {
		return ErrAlreadyAssigned
	}
	teacher.TeacherCourseIDs = refset.Add(teacher.TeacherCourseIDs, course.CourseID)
	course.CourseTeacherID = &teacher.TeacherID
	return nil
}

// UnassignCourse removes the course from the teacher's set. The course's
// teacher ref is cleared only when it still points at this teacher.
func UnassignCourse(teacher *teachermodel.TeacherModel, course *coursemodel.CourseModel) error {
	if !refset.Contains(teacher.TeacherCourseIDs, course.CourseID) {
		return ErrNotAssigned
	}
	teacher.TeacherCourseIDs = refset.Remove(teacher.TeacherCourseIDs, course.CourseID)
	if course.CourseTeacherID != nil && *course.CourseTeacherID == teacher.TeacherID {
		course.CourseTeacherID = nil
	}
	return nil
}

// Teaches reports whether the teacher's set contains the course.
func Teaches(teacher *teachermodel.TeacherModel, courseID string) bool {
	for _, v := range teacher.TeacherCourseIDs {
		if v == courseID {
			return true
		}
	}
	return false
}
