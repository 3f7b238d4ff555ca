package validator

import (
	"github.com/go-playground/validator/v10"

	"instalab_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister(v, "is-user-role", validateUserRole)
	mustRegister(v, "is-listing-status", validateListingStatus)
	mustRegister(v, "is-application-status", validateApplicationStatus)
	mustRegister(v, "is-story-type", validateStoryType)
	mustRegister(v, "is-meeting-type", validateMeetingType)
	mustRegister(v, "is-student-post-type", validateStudentPostType)
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validator: failed to register rule " + tag + ": " + err.Error())
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.IsValidUserRole(models.UserRole(fl.Field().String()))
}

func validateListingStatus(fl validator.FieldLevel) bool {
	return models.IsValidListingStatus(models.ListingStatus(fl.Field().String()))
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	return models.IsValidApplicationStatus(models.ApplicationStatus(fl.Field().String()))
}

func validateStoryType(fl validator.FieldLevel) bool {
	return models.IsValidStoryType(models.StoryType(fl.Field().String()))
}

func validateMeetingType(fl validator.FieldLevel) bool {
	return models.IsValidMeetingType(models.MeetingType(fl.Field().String()))
}

func validateStudentPostType(fl validator.FieldLevel) bool {
	return models.IsValidStudentPostType(models.StudentPostType(fl.Field().String()))
}
