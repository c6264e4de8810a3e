package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateAccount    = errors.New("account name already exists")
	ErrDuplicateCarrier    = errors.New("carrier name already exists")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrTooManyDocuments    = errors.New("too many documents in one import batch")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
