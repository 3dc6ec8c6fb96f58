// Package session holds the in-memory session state of a Mini App client:
// the current user, token, loading flag, and last error. The state mirrors
// the credential store on startup and changes only through Manager methods,
// which delegate the real work to the auth service.
//
//	manager := session.NewManager(authService, initdata.FromEnv())
//	manager.Init(ctx)
//
//	if !manager.IsAuthenticated() {
//		manager.Login(ctx)
//	}
//
// Consumers read snapshots through the projection methods (User, Token,
// IsAuthenticated, IsLoading, Err) or watch transitions:
//
//	unsubscribe := manager.Subscribe(func(s session.State) {
//		render(s)
//	})
//	defer unsubscribe()
//
// State transitions are atomic: subscribers and readers never observe a
// partially applied login result. The invariant IsAuthenticated ==
// (Token != "" && User != nil) holds across every transition.
package session
