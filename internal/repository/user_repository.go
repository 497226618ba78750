package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/utils"
)

// Typed duplicate errors for the three globally unique user columns.
var (
    ErrUserNotFound      = errors.New("user not found")
    ErrEmailExists       = errors.New("email already exists")
    ErrUsernameExists    = errors.New("username already exists")
    ErrCitizenshipExists = errors.New("citizenship number already exists")
)

// UserRepo persists user accounts.  Passwords are hashed here so no
// caller ever stores a plain value; everything else about identity
// (token issuing, role checks) lives at the auth boundary.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, first_name, last_name, citizenship_number, phone, email, password_hash, role, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
    return row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.CitizenshipNumber,
        &u.Phone, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// Create inserts a user and returns its ID.  Uniqueness of email,
// username and citizenship number is pre-checked so the caller gets
// a typed error naming the offending field; the unique indexes
// still back the check under concurrency.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error) {
    u.Email = strings.ToLower(strings.TrimSpace(u.Email))
    u.Username = strings.TrimSpace(u.Username)

    var exists bool
    if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", u.Email).Scan(&exists); err != nil {
        return 0, err
    }
    if exists {
        return 0, ErrEmailExists
    }
    if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", u.Username).Scan(&exists); err != nil {
        return 0, err
    }
    if exists {
        return 0, ErrUsernameExists
    }
    if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE citizenship_number = ?)", u.CitizenshipNumber).Scan(&exists); err != nil {
        return 0, err
    }
    if exists {
        return 0, ErrCitizenshipExists
    }

    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO users (username, first_name, last_name, citizenship_number, phone, email, password_hash, role)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        u.Username, u.FirstName, u.LastName, u.CitizenshipNumber, u.Phone, u.Email, hash, u.Role)
    if err != nil {
        if isDuplicateKey(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    u.ID = uint64(id)
    return u.ID, nil
}

// GetByEmail fetches a user by normalized email.  Returns
// ErrUserNotFound when no row matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return r.getWhere(ctx, "email = ?", email)
}

// GetByUsername fetches a user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
    return r.getWhere(ctx, "username = ?", strings.TrimSpace(username))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
    return r.getWhere(ctx, "id = ?", id)
}

func (r *UserRepo) getWhere(ctx context.Context, cond string, arg any) (*model.User, error) {
    var u model.User
    err := scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE "+cond+" LIMIT 1", arg), &u)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUserNotFound
        }
        return nil, err
    }
    return &u, nil
}

// ListByRole returns all users holding the given role, ordered by
// username.  The admin user screen lists customers this way.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]model.User, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE role = ? ORDER BY username", role)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    users := make([]model.User, 0)
    for rows.Next() {
        var u model.User
        if err := scanUser(rows, &u); err != nil {
            return nil, err
        }
        users = append(users, u)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return users, nil
}

// Update persists profile edits (names, phone, email).  The
// username, citizenship number and role are immutable after
// creation.  Returns ErrEmailExists when the new email belongs to a
// different account, ErrUserNotFound when the id is gone.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
    u.Email = strings.ToLower(strings.TrimSpace(u.Email))
    var taken bool
    if err := r.DB.QueryRowContext(ctx,
        "SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id <> ?)", u.Email, u.ID).Scan(&taken); err != nil {
        return err
    }
    if taken {
        return ErrEmailExists
    }
    res, err := r.DB.ExecContext(ctx,
        "UPDATE users SET first_name = ?, last_name = ?, phone = ?, email = ? WHERE id = ?",
        u.FirstName, u.LastName, u.Phone, u.Email, u.ID)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrEmailExists
        }
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        var exists bool
        if err := r.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", u.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrUserNotFound
        }
    }
    return nil
}

// Delete removes a user account.  Reservations and refresh tokens
// referencing it are cascaded by their foreign keys.  Returns
// ErrUserNotFound when no row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrUserNotFound
    }
    return nil
}
