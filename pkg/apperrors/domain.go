package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для общих ошибок
бизнес-логики и домена Bench Racers.
*/

// =========================================================================
// Фабричные функции (оборачивание ошибок из репозиториев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные переменные (частые, статичные ошибки)
// =========================================================================

// ErrInvalidCredentials - неверная пара email/пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusBadRequest,
)

// ErrEmailNotVerified - логин до подтверждения email.
// Фронтенд по этому коду показывает экран "проверьте почту".
var ErrEmailNotVerified = New(
	CodeEmailNotVerified,
	"auth",
	"Email is not verified",
	http.StatusForbidden,
)

// ErrEmailAlreadyExists - регистрация на занятый email.
var ErrEmailAlreadyExists = New(
	CodeEmailExists,
	"auth",
	"An account with this email already exists",
	http.StatusConflict,
)

// ErrWeakPassword - пароль не проходит минимальные требования.
var ErrWeakPassword = New(
	CodeWeakPassword,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

// ErrInvalidToken - невалидный или истекший verification/reset токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusBadRequest,
)

// ErrNotOwner - попытка изменить чужую запись.
var ErrNotOwner = New(
	CodeForbidden,
	"garage",
	"You do not own this entry",
	http.StatusForbidden,
)

// ErrNotEditor - не-редактор пытается выполнить админ-действие.
var ErrNotEditor = New(
	CodeForbidden,
	"admin",
	"Editor access required",
	http.StatusForbidden,
)

// ErrEntryNotFound - запись (car build) не найдена.
var ErrEntryNotFound = New(
	CodeNotFound,
	"entries",
	"Entry not found",
	http.StatusNotFound,
)

// ErrCommentNotFound - комментарий не найден или удален.
var ErrCommentNotFound = New(
	CodeNotFound,
	"comments",
	"Comment not found",
	http.StatusNotFound,
)

// ErrCommentTooLong - текст комментария вне границ 1..1000.
var ErrCommentTooLong = New(
	CodeValidationFailed,
	"comments",
	"Comment text must be between 1 and 1000 characters",
	http.StatusBadRequest,
)

// ErrParentCommentInvalid - ответ на несуществующий, удаленный
// или принадлежащий другой записи комментарий.
var ErrParentCommentInvalid = New(
	CodeInvalidOperation,
	"comments",
	"Parent comment is not available for replies",
	http.StatusBadRequest,
)
