package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		owner    string
		want     bool
	}{
		{"owner", Authenticated("user1"), "user1", true},
		{"other user", Authenticated("user2"), "user1", false},
		{"anonymous", Anonymous(), "user1", false},
		{"anonymous and empty owner", Anonymous(), "", false},
		{"empty username is anonymous", Authenticated(""), "", false},
		{"case sensitive", Authenticated("User1"), "user1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.identity, tt.owner))
		})
	}
}

func TestIdentity_ZeroValueIsAnonymous(t *testing.T) {
	var id Identity
	assert.False(t, id.IsAuthenticated())
	assert.Empty(t, id.Username())
	assert.Equal(t, Anonymous(), id)
}

func TestIdentity_Authenticated(t *testing.T) {
	id := Authenticated("user1")
	assert.True(t, id.IsAuthenticated())
	assert.Equal(t, "user1", id.Username())
}

func TestAuthorize_OtherUserNeverAuthorized(t *testing.T) {
	intruder := Authenticated("user2")
	for _, owner := range []string{"user1", "user3", "", "user22"} {
		assert.False(t, Authorize(intruder, owner), owner)
	}
}
