// Package auth implements the credential-for-token exchange at the heart of
// the Mini App session lifecycle: a raw Telegram launch credential goes in,
// a persisted session token and user profile come out.
//
// The service owns the contract between the transport client and the
// credential store. Login validates the credential's shape, POSTs it to the
// backend without an auth header, and persists the returned token and
// profile under the auth_token and user_data keys with a 30-day expiry:
//
//	service := auth.New(client, store)
//
//	user, err := service.Login(ctx, raw)
//	if errors.Is(err, auth.ErrInvalidInitData) {
//		// rejected before any network call
//	}
//
// Overlapping Login calls are collapsed into a single backend exchange;
// late callers receive the in-flight result rather than racing it.
//
// RefreshAuth re-validates the persisted session without touching the
// network. Logout removes both entries and reports persistence failures
// explicitly; callers decide whether to degrade or surface them.
//
// The service also implements apiclient.TokenSource, so the same instance
// can feed bearer tokens back into the transport for authenticated calls.
package auth
