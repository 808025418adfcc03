package auth

// PasswordHasher genera y verifica cadenas de credenciales (implementado por credential.Hasher).
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) bool
	NeedsRehash(encoded string) bool
}
