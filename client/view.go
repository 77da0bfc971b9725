package client

import "sync"

// View identifies which screen the front end renders
type View int

const (
	ViewLanding View = iota
	ViewLogin
	ViewSignup
	ViewChat
)

// String returns the view's name
func (v View) String() string {
	switch v {
	case ViewLanding:
		return "landing"
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewChat:
		return "chat"
	default:
		return "unknown"
	}
}

// User is the identity-provider view of the signed-in user. Users are
// created and destroyed by the provider; this client only references them.
type User struct {
	UID   string
	Name  string
	Email string
}

// Router selects the current screen from the auth state and navigation
// actions. Auth changes win over navigation: an unauthenticated user can
// never land on the chat screen.
type Router struct {
	mu   sync.Mutex
	view View
	user *User
}

// NewRouter creates a router on the landing screen, signed out
func NewRouter() *Router {
	return &Router{view: ViewLanding}
}

// View returns the current screen
func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// User returns the signed-in user, nil when signed out
func (r *Router) User() *User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

// HandleAuthChange applies an auth-state event from the identity provider.
// Signing in lands on chat; signing out while on chat forces login.
func (r *Router) HandleAuthChange(user *User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.user = user
	if user != nil {
		r.view = ViewChat
		return
	}
	if r.view == ViewChat {
		r.view = ViewLogin
	}
}

// Navigate applies an explicit navigation action. Navigating to chat
// without being signed in redirects to login.
func (r *Router) Navigate(target View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if target == ViewChat && r.user == nil {
		r.view = ViewLogin
		return
	}
	r.view = target
}

// SignOut clears the user and returns to the landing screen
func (r *Router) SignOut() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = nil
	r.view = ViewLanding
}
