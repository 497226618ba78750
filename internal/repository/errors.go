// Package repository contains the data access layer: raw SQL over a
// shared *sql.DB pool.  Each entity gets its own repository type with
// context-aware methods; methods suffixed Tx run inside a caller-owned
// transaction.  Typed not-found/duplicate errors live next to their
// repository so handlers can map failures to HTTP responses with
// errors.Is.
package repository

import (
    "strings"
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// violation (error 1062).  Unique columns (email, username,
// citizenship number) rely on this to surface typed errors.
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
