// Package cli provides the interactive command-line client.
//
// It wires configuration, the local cache, the backend and broker API
// clients, and an interactive REPL over the application services. Typical
// flow: restore the session from the server, then execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Browse the feed with author profiles attached
//   - Like and unlike posts
//   - Compose posts with attached images
//   - Change the profile avatar through the crop-and-upload flow
//   - Follow and unfollow users
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
