package apperrors

import (
	"net/http"
)

// Factories for wrapping repository errors.

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & accounts ---

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrNicknameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Nickname already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// --- Job listings ---

var ErrListingNotActive = New(
	CodeNotFound,
	"jobs",
	"Job listing not found or not active",
	http.StatusNotFound,
)

var ErrInvalidListingStatus = New(
	CodeInvalidStatus,
	"jobs",
	"Operation not allowed for the current listing status",
	http.StatusConflict,
)

var ErrDeadlinePassed = New(
	CodeInvalidOperation,
	"jobs",
	"The application deadline for this listing has passed",
	http.StatusBadRequest,
)

var ErrNoSpotsRemaining = New(
	CodeLimitExceeded,
	"jobs",
	"No spots remaining on this listing",
	http.StatusConflict,
)

// --- Applications ---

var ErrApplicationAlreadyExists = New(
	CodeAlreadyExists,
	"applications",
	"You have already applied to this job",
	http.StatusConflict,
)

var ErrInvalidApplicationStatus = New(
	CodeInvalidStatus,
	"applications",
	"Invalid application status",
	http.StatusBadRequest,
)

var ErrInvalidStatusTransition = New(
	CodeInvalidStatus,
	"applications",
	"Transition not allowed from the current application status",
	http.StatusConflict,
)

// --- Feed ---

var ErrCannotFollowSelf = New(
	CodeInvalidOperation,
	"feed",
	"You cannot follow yourself",
	http.StatusBadRequest,
)

var ErrAlreadyLiked = New(
	CodeAlreadyExists,
	"feed",
	"Post already liked",
	http.StatusConflict,
)

// --- Stories ---

var ErrStoryExpired = New(
	CodeInvalidOperation,
	"stories",
	"This story has expired",
	http.StatusBadRequest,
)

// --- Chat ---

var ErrConversationAccessDenied = New(
	CodeForbidden,
	"chat",
	"Access to conversation denied",
	http.StatusForbidden,
)

var ErrCannotMessageSelf = New(
	CodeInvalidOperation,
	"chat",
	"You cannot start a conversation with yourself",
	http.StatusBadRequest,
)

// --- Student area ---

var ErrGroupFull = New(
	CodeLimitExceeded,
	"students",
	"This study group is full",
	http.StatusConflict,
)

var ErrAlreadyMember = New(
	CodeAlreadyExists,
	"students",
	"You are already a member of this group",
	http.StatusConflict,
)

var ErrCannotConnectSelf = New(
	CodeInvalidOperation,
	"students",
	"You cannot connect with yourself",
	http.StatusBadRequest,
)

var ErrConnectionAlreadyExists = New(
	CodeAlreadyExists,
	"students",
	"A connection between these users already exists",
	http.StatusConflict,
)
