package constants

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Profile types referenced from users.user_profile_type.
const (
	ProfileTypeStudent = "student"
	ProfileTypeTeacher = "teacher"
)

var (
	AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

	// Roles allowed to record grades and absences.
	StaffRoles = []string{RoleAdmin, RoleTeacher}
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}
