package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	authdto "schoolku_backend/internals/features/users/auth/dto"
	authhelper "schoolku_backend/internals/features/users/auth/helper"
	authmodel "schoolku_backend/internals/features/users/auth/model"
	"schoolku_backend/internals/features/users/auth/service"
	usermodel "schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"

	studentmodel "schoolku_backend/internals/features/school/students/model"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register creates the user plus, for non-admin roles, the matching
// student or teacher profile in the same transaction.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authdto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	hash, err := authhelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	tx := ac.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var count int64
	if err := tx.Model(&usermodel.UserModel{}).
		Where("user_email = ?", req.Email).
		Count(&count).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
	}
	if count > 0 {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered")
	}

	user := usermodel.UserModel{
		UserFirstName: req.FirstName,
		UserLastName:  req.LastName,
		UserEmail:     req.Email,
		UserPassword:  hash,
		UserRole:      req.Role,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	switch req.Role {
	case constants.RoleStudent:
		student := studentmodel.StudentModel{
			StudentFirstName: req.FirstName,
			StudentLastName:  req.LastName,
			StudentEmail:     req.Email,
			StudentPassword:  hash,
		}
		if err := tx.Create(&student).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student profile")
		}
		profileType := constants.ProfileTypeStudent
		user.UserProfileID = &student.StudentID
		user.UserProfileType = &profileType
	case constants.RoleTeacher:
		hireDate := time.Now()
		teacher := teachermodel.TeacherModel{
			TeacherFirstName: req.FirstName,
			TeacherLastName:  req.LastName,
			TeacherEmail:     req.Email,
			TeacherPassword:  hash,
			TeacherHireDate:  &hireDate,
		}
		if err := tx.Create(&teacher).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create teacher profile")
		}
		profileType := constants.ProfileTypeTeacher
		user.UserProfileID = &teacher.TeacherID
		user.UserProfileType = &profileType
	}

	if user.UserProfileID != nil {
		if err := tx.Model(&usermodel.UserModel{}).
			Where("user_id = ?", user.UserID).
			Updates(map[string]interface{}{
				"user_profile_id":   user.UserProfileID,
				"user_profile_type": user.UserProfileType,
			}).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link profile")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit registration")
	}

	token, err := service.GenerateToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonCreated(c, "Registered successfully", fiber.Map{
		"token": token,
		"user":  toUserResponse(&user),
	})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authdto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	var user usermodel.UserModel
	if err := ac.DB.Where("user_email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	if err := authhelper.CheckPasswordHash(user.UserPassword, req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := service.GenerateToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	return helper.JsonOK(c, "Logged in successfully", fiber.Map{
		"token": token,
		"user":  toUserResponse(&user),
	})
}

// Logout blacklists the presented token until its natural expiry.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No token provided")
	}
	tokenString := parts[1]

	claims, err := service.ParseToken(tokenString)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	expiredAt, err := service.TokenExpiry(claims)
	if err != nil {
		expiredAt = time.Now().Add(24 * time.Hour)
	}

	entry := authmodel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: expiredAt,
	}
	if err := ac.DB.Create(&entry).Error; err != nil {
		// Unique violation means it is already blacklisted; treat as done.
		if !strings.Contains(strings.ToLower(err.Error()), "duplicate") &&
			!strings.Contains(strings.ToLower(err.Error()), "unique") {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke token")
		}
	}

	return helper.JsonOK(c, "Logged out successfully", nil)
}

// Profile returns the authenticated user and its linked profile document.
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing user in context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user id")
	}

	var user usermodel.UserModel
	if err := ac.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	var profile interface{}
	if user.UserProfileID != nil && user.UserProfileType != nil {
		switch *user.UserProfileType {
		case constants.ProfileTypeStudent:
			var student studentmodel.StudentModel
			if err := ac.DB.First(&student, "student_id = ?", *user.UserProfileID).Error; err == nil {
				profile = student
			}
		case constants.ProfileTypeTeacher:
			var teacher teachermodel.TeacherModel
			if err := ac.DB.First(&teacher, "teacher_id = ?", *user.UserProfileID).Error; err == nil {
				profile = teacher
			}
		}
	}

	return helper.JsonOK(c, "Profile fetched successfully", fiber.Map{
		"user":    toUserResponse(&user),
		"profile": profile,
	})
}

func toUserResponse(u *usermodel.UserModel) authdto.UserResponse {
	resp := authdto.UserResponse{
		UserID:    u.UserID.String(),
		FirstName: u.UserFirstName,
		LastName:  u.UserLastName,
		Email:     u.UserEmail,
		Role:      u.UserRole,
	}
	if u.UserProfileID != nil {
		id := u.UserProfileID.String()
		resp.ProfileID = &id
	}
	resp.ProfileType = u.UserProfileType
	return resp
}
