package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Account represents a client account owning one insurance program.
type Account struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProgramRecord is the persisted form of an account's program. ProgramData
// holds the Program JSON (layers and all nested carrier detail).
type ProgramRecord struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	AccountID   uuid.UUID       `db:"account_id" json:"account_id"`
	ProgramData json.RawMessage `db:"program_data" json:"program_data"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// CarrierEntry is a known carrier name in the reference list used to seed
// manual entry dropdowns.
type CarrierEntry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CarrierName string    `db:"carrier_name" json:"carrier_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// User represents an authenticated broker user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded source document.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	AccountID    uuid.UUID  `db:"account_id" json:"account_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	ParseSuccess bool       `db:"parse_success" json:"parse_success"`
	ParseError   string     `db:"parse_error" json:"parse_error"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
