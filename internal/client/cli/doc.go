// Package cli provides the interactive academy command-line client.
//
// It wires configuration, the session store, the API client and services,
// the route guard and an interactive REPL. Pages are visited through the
// guard, so protected pages redirect to login and come back afterwards.
//
// Key features:
//   - Browse courses and consulting services, submit a service request
//   - Register / Login / Logout, edit the profile
//   - Enroll in a course through the payment widget
//   - Student dashboard with course progress
//   - Admin back-office: users, courses, service requests
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
