// Package cli implements the interactive authctl shell.
//
// The shell prompts for credentials, talks to the auth server through
// services.AuthService and remembers the issued bearer token in a local
// SQLite session database, so a session survives restarts until logout.
//
// Commands: help, register, login, me, logout, exit | quit.
package cli
