package auth

import (
	"github.com/alexedwards/argon2id"
)

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash gera um hash Argon2id com salt aleatório (os parâmetros ficam
// embutidos no próprio hash).
func Hash(senha string) (string, error) {
	return argon2id.CreateHash(senha, params)
}

// Verify compara a senha com o hash Argon2id. Hash malformado resulta em
// falso, nunca em erro propagado ou panic.
func Verify(senha, hash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(senha, hash)
	if err != nil {
		return false
	}
	return ok
}
