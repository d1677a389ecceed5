// Package cli provides the interactive RevisApp command-line client.
//
// It wires configuration, the local key-value store, the diagnostic log,
// the remote directory and email clients, the services, and a REPL whose
// commands depend on the session status. Status changes arrive over the
// event bus and re-render the current view; entering the dashboard greets
// first-time users and searches workshops for the user's postal code.
//
// Views:
//   - Acessar sua conta (login, register)
//   - Crie sua conta (register, login)
//   - Verifique seu e-mail (verify, login)
//   - RevisApp dashboard (search, profile, logout)
//
// help, logs, errors and exit work everywhere. The REPL is started via
// App.Run(ctx), which blocks until the user exits or ctx is cancelled.
package cli
