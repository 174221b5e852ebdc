package bootstrap

import (
	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// ProfileFromToken projects a verified ID token onto the local profile
// shape. Only the identifier, email and display name are carried over; role,
// school affiliation and timestamps are hydrated from the users collection
// by the user-management layer. Total and idempotent: missing claims leave
// fields empty, a nil token yields a zero profile.
func ProfileFromToken(token *firebaseauth.Token) tracker.Profile {
	if token == nil {
		return tracker.Profile{}
	}

	profile := tracker.Profile{UID: token.UID}

	if email, ok := stringClaim(token.Claims, "email"); ok {
		profile.Email = email
	}
	if name, ok := stringClaim(token.Claims, "name"); ok {
		profile.DisplayName = name
	}

	return profile
}

// ProfileFromUser projects a user record onto the local profile shape, with
// the same field subset as ProfileFromToken.
func ProfileFromUser(user *firebaseauth.UserRecord) tracker.Profile {
	if user == nil || user.UserInfo == nil {
		return tracker.Profile{}
	}

	return tracker.Profile{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}
}

// stringClaim safely extracts a string claim
func stringClaim(claims map[string]any, key string) (string, bool) {
	if value, exists := claims[key]; exists {
		if s, ok := value.(string); ok {
			return s, true
		}
	}
	return "", false
}
