package domain

// AccessCredential is the credential issued by a provider's token endpoint.
// It is held only for the duration of a single profile fetch.
type AccessCredential interface {
	isAccessCredential()
}

// TokenOnly is an OAuth2 bearer access token.
type TokenOnly struct {
	AccessToken string
	TokenType   string
}

// TokenWithSecret is a token plus token secret, as issued by OAuth 1.0a
// style providers.
type TokenWithSecret struct {
	Token  string
	Secret string
}

func (TokenOnly) isAccessCredential()       {}
func (TokenWithSecret) isAccessCredential() {}

// BearerValue extracts the value sent to the provider's profile endpoint.
// It reports false for nil or empty credentials.
func BearerValue(c AccessCredential) (string, bool) {
	switch v := c.(type) {
	case TokenOnly:
		return v.AccessToken, v.AccessToken != ""
	case *TokenOnly:
		if v == nil {
			return "", false
		}
		return v.AccessToken, v.AccessToken != ""
	case TokenWithSecret:
		return v.Token, v.Token != ""
	case *TokenWithSecret:
		if v == nil {
			return "", false
		}
		return v.Token, v.Token != ""
	default:
		return "", false
	}
}

// CallbackOutcome is what the provider handed back on the callback route:
// either CallbackError or Granted, never both.
type CallbackOutcome interface {
	isCallbackOutcome()
}

// CallbackError carries the provider's error values in the order received.
type CallbackError struct {
	Messages []string
}

// Granted carries the credential obtained from the code exchange. Credential
// is nil when the exchange failed or produced an unrecognised shape.
type Granted struct {
	Credential AccessCredential
}

func (CallbackError) isCallbackOutcome() {}
func (Granted) isCallbackOutcome()       {}
