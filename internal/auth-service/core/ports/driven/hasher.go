package driven

type IPasswordHasher interface {
	Hash(password string) ([]byte, error)
	Check(password string, hash []byte) bool
}
