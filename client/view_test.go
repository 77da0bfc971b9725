package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterStartsOnLandingSignedOut(t *testing.T) {
	r := NewRouter()
	assert.Equal(t, ViewLanding, r.View())
	assert.Nil(t, r.User())
}

func TestSignInLandsOnChat(t *testing.T) {
	r := NewRouter()
	r.Navigate(ViewLogin)

	r.HandleAuthChange(&User{UID: "u1"})
	assert.Equal(t, ViewChat, r.View())
	assert.Equal(t, "u1", r.User().UID)
}

func TestSignOutOnChatForcesLogin(t *testing.T) {
	r := NewRouter()
	r.HandleAuthChange(&User{UID: "u1"})
	assert.Equal(t, ViewChat, r.View())

	r.HandleAuthChange(nil)
	assert.Equal(t, ViewLogin, r.View())
	assert.Nil(t, r.User())
}

func TestAuthLossOutsideChatKeepsScreen(t *testing.T) {
	r := NewRouter()
	r.Navigate(ViewSignup)

	r.HandleAuthChange(nil)
	assert.Equal(t, ViewSignup, r.View())
}

func TestUnauthenticatedChatNavigationRedirectsToLogin(t *testing.T) {
	r := NewRouter()
	r.Navigate(ViewChat)
	assert.Equal(t, ViewLogin, r.View())
}

func TestAuthenticatedNavigation(t *testing.T) {
	r := NewRouter()
	r.HandleAuthChange(&User{UID: "u1"})

	r.Navigate(ViewLanding)
	assert.Equal(t, ViewLanding, r.View())

	r.Navigate(ViewChat)
	assert.Equal(t, ViewChat, r.View())
}

func TestSignOutReturnsToLanding(t *testing.T) {
	r := NewRouter()
	r.HandleAuthChange(&User{UID: "u1"})

	r.SignOut()
	assert.Equal(t, ViewLanding, r.View())
	assert.Nil(t, r.User())
}

func TestViewNames(t *testing.T) {
	assert.Equal(t, "landing", ViewLanding.String())
	assert.Equal(t, "login", ViewLogin.String())
	assert.Equal(t, "signup", ViewSignup.String())
	assert.Equal(t, "chat", ViewChat.String())
}
