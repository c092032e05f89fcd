package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kursroster/backend/internal/app/models/dto"
	"github.com/kursroster/backend/internal/pkg/apperrors"
)

// HandleAPIError maps the error taxonomy to HTTP statuses and the standard
// error envelope. Messages stay generic for authorization failures so a
// course leader never learns why another student is out of their scope.
func HandleAPIError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	var limitErr *apperrors.CourseLimitError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, validationErr.Reason).WithField(validationErr.Field)))

	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")))

	case errors.Is(err, apperrors.ErrNotAuthenticated):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrInsufficientRole),
		errors.Is(err, apperrors.ErrNotParticipant):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))

	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")))

	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")))

	case errors.As(err, &limitErr):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeCourseLimitExceeded, "Course limit exceeded").
				WithDetails(gin.H{"attempted": limitErr.Attempted, "allowed": limitErr.Limit})))

	case errors.Is(err, apperrors.ErrCourseLimitExceeded):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeCourseLimitExceeded, "Course limit exceeded")))

	case errors.Is(err, apperrors.ErrStorageUnavailable):
		c.JSON(503, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeStorageUnavailable, "Roster storage unavailable")))

	default:
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
