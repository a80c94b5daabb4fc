// Package auth implements administrator authentication for the catalog.
//
// The public catalog endpoints are always open; auth only gates the admin
// API. Two modes are supported via AUTH_MODE:
//
//   - local: username/password accounts with bcrypt hashes, SQLite-backed
//     sessions (scs), CSRF protection on state-changing requests, and
//     account lockout after repeated failed logins.
//   - none: the admin API is open. Intended for trusted single-operator
//     deployments only.
package auth
