// Package middleware provides route guards for the session lifecycle: each
// guard decides per request whether to proceed, redirect to login, or
// redirect home, based on the session state. Guards never surface errors to
// the client; a failed check means a redirect.
//
// Four policies cover the usual route kinds:
//
//	sessions := session.NewManager(authService, creds)
//
//	mux.Handle("/profile", middleware.RequireAuth(sessions)(profileHandler))
//	mux.Handle("/login", middleware.RequireNoAuth(sessions)(loginHandler))
//	mux.Handle("/about", middleware.OptionalAuth(sessions)(aboutHandler))
//	mux.Handle("/wallet", middleware.AsyncAuth(sessions)(walletHandler))
//
// RequireAuth and AsyncAuth preserve the original target in a redirect
// query parameter; the login handler resumes it after success:
//
//	func loginHandler(w http.ResponseWriter, r *http.Request) {
//		if sessions.Login(r.Context()) {
//			http.Redirect(w, r, middleware.ResumeTarget(r, "/"), http.StatusSeeOther)
//			return
//		}
//		// render login error
//	}
//
// ResumeTarget accepts only same-origin relative paths, so the parameter
// cannot be abused as an open redirect.
package middleware
