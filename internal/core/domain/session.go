package domain

// Session is the identity a verified token asserts for the current request.
// Role and ProfileComplete are cached at issuance; a profile completed after
// sign-in becomes visible when the upsert response hands back a fresh token.
type Session struct {
	AccountID       string
	Email           string
	Role            Role
	ProfileComplete bool
}
