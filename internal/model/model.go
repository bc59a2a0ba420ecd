// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Account is a registered user. The password is stored only as a salted
// Argon2id hash; plaintext never leaves the registration/login handlers.
type Account struct {
	ID          uuid.UUID // PK
	LoginName   string    // unique, case-sensitive
	PwdHash     []byte    // Argon2id(password, Salt)
	Salt        []byte    // per-account salt
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
	CreatedAt   time.Time
}

// AccountSummary is the public projection used in the directory listing and
// as a resolved comment author.
type AccountSummary struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// Profile is the credential-free detail view of an account. The login handle
// is deliberately excluded.
type Profile struct {
	ID          uuid.UUID `json:"_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Occupation  string    `json:"occupation"`
}

// Registration carries the fields accepted by POST /user.
type Registration struct {
	LoginName   string `json:"login_name"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

// Photo is an uploaded image record owned by one account. The owner and the
// stored file name are immutable after creation.
type Photo struct {
	ID        uuid.UUID // PK
	AccountID uuid.UUID // owner
	FileName  string    // generated storage name, never the client's
	CreatedAt time.Time
}

// Comment is a timestamped annotation appended to a photo. Seq is assigned by
// the store on append and fixes the display order.
type Comment struct {
	ID        uuid.UUID
	PhotoID   uuid.UUID
	AccountID uuid.UUID // author; may dangle if the account is removed out-of-band
	Body      string
	Seq       int64
	CreatedAt time.Time
}

// Session is a server-issued proof of authentication. The token is opaque to
// clients and carried in a cookie.
type Session struct {
	Token     string
	AccountID uuid.UUID
	FirstName string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionView is the public shape returned by login and registration.
type SessionView struct {
	ID        uuid.UUID `json:"_id"`
	FirstName string    `json:"first_name"`
}

// CommentView is a comment with its author resolved. User is null when the
// authoring account no longer exists.
type CommentView struct {
	ID        uuid.UUID       `json:"_id"`
	Body      string          `json:"comment"`
	CreatedAt time.Time       `json:"date_time"`
	User      *AccountSummary `json:"user"`
}

// PhotoView is the aggregated photo document served by /photosOfUser/{id}.
type PhotoView struct {
	ID        uuid.UUID     `json:"_id"`
	AccountID uuid.UUID     `json:"user_id"`
	Comments  []CommentView `json:"comments"`
	FileName  string        `json:"file_name"`
	CreatedAt time.Time     `json:"date_time"`
}
