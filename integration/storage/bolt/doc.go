// Package bolt provides a bbolt-backed credential store for applications that
// need authentication state to survive process restarts.
//
// The store implements credstore.Store on top of a single-file embedded
// database. Entries are stored as JSON records in one bucket, each carrying an
// optional expiry timestamp. Expired records are removed lazily when read, so
// no background process is required.
//
// # Usage Example
//
//	package main
//
//	import (
//		"context"
//		"log"
//		"time"
//
//		"github.com/miniappkit/tmauth/core/config"
//		"github.com/miniappkit/tmauth/integration/storage/bolt"
//	)
//
//	func main() {
//		var cfg bolt.Config
//		config.MustLoad(&cfg)
//
//		store, err := bolt.Open(cfg)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer store.Close()
//
//		ctx := context.Background()
//		if err := store.Set(ctx, "auth_token", "eyJhbGciOi...", 30*24*time.Hour); err != nil {
//			log.Fatal(err)
//		}
//
//		token, err := store.Get(ctx, "auth_token")
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Println("token:", token)
//	}
//
// An already-open *bbolt.DB can be shared with the rest of the application
// through New:
//
//	db, err := bbolt.Open("app.db", 0600, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := bolt.New(db)
//
// # Error Handling
//
// Missing and expired keys are reported with credstore.ErrNotFound, matching
// the behavior of the other store implementations. Open failures wrap
// ErrFailedToOpenDatabase, and undecodable records wrap ErrCorruptedEntry.
package bolt
