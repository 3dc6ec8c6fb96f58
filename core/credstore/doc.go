// Package credstore defines the persistence contract for session credentials
// (the backend-issued token and the serialized user profile) and provides an
// in-memory implementation.
//
// Entries carry a per-key expiry: writing resets it, reading past it behaves
// like a miss. Absence is reported with ErrNotFound and is an expected state,
// not a failure:
//
//	store := credstore.NewMemory()
//
//	_ = store.Set(ctx, "auth_token", token, 30*24*time.Hour)
//
//	token, err := store.Get(ctx, "auth_token")
//	if errors.Is(err, credstore.ErrNotFound) {
//		// not logged in
//	}
//
// Durable implementations of the same interface live under
// integration/storage (bbolt and Redis). The in-memory store enforces expiry
// lazily on read; long-lived processes can additionally run a background
// sweep:
//
//	go store.Start(ctx)
//	defer store.Stop()
package credstore
