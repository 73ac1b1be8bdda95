package types

// IdentityAssertion is the userinfo payload asserted by the identity
// provider after login. We only ever create users from this, never from
// client-supplied data.
type IdentityAssertion struct {
	Userinfo Userinfo `json:"userinfo"`
}

type Userinfo struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Nickname   string `json:"nickname"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// UserFromIdentity maps an identity assertion to a User. Missing name
// fields map to empty strings and a missing picture leaves the avatar
// unset. The result is validated, so a malformed email is rejected here.
func UserFromIdentity(assertion IdentityAssertion) (*User, error) {
	info := assertion.Userinfo
	user := &User{
		ID:         info.Sub,
		GivenName:  info.GivenName,
		FamilyName: info.FamilyName,
		Nickname:   info.Nickname,
		Name:       info.Name,
		Email:      info.Email,
	}
	if info.Picture != "" {
		user.AvatarURL = &info.Picture
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}
