package model

import "time"

// User represents an account record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The
// json tags are omitted because these structs are used internally
// by the repository layer; handlers define separate response types
// with appropriate JSON tags.  Email, username and the citizenship
// number are each globally unique.
//
// Fields:
//  ID                – primary key identifier of the user.
//  Username          – unique login name.
//  FirstName         – first name (3–50 characters).
//  LastName          – last name (3–50 characters).
//  CitizenshipNumber – unique 10-digit national identity number.
//  Phone             – contact phone number.
//  Email             – unique email address.
//  PasswordHash      – bcrypt hashed password.
//  Role              – role name (ADMIN or CUSTOMER).
//  IsActive          – whether the account is active.
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type User struct {
    ID                uint64    // users.id
    Username          string    // users.username
    FirstName         string    // users.first_name
    LastName          string    // users.last_name
    CitizenshipNumber string    // users.citizenship_number
    Phone             string    // users.phone
    Email             string    // users.email
    PasswordHash      string    // users.password_hash
    Role              string    // users.role
    IsActive          bool      // users.is_active
    CreatedAt         time.Time // users.created_at
    UpdatedAt         time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
