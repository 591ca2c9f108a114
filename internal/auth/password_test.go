package auth

import "testing"

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := Hash("super-secreta")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !Verify("super-secreta", hash) {
		t.Fatal("senha correta deveria verificar")
	}
	if Verify("outra-senha", hash) {
		t.Fatal("senha errada não deveria verificar")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("mesma-senha")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash("mesma-senha")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if h1 == h2 {
		t.Fatal("dois hashes da mesma senha deveriam diferir (salt)")
	}
	if !Verify("mesma-senha", h1) || !Verify("mesma-senha", h2) {
		t.Fatal("ambos os hashes deveriam verificar")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("qualquer", "não-é-um-hash-argon2id") {
		t.Fatal("hash malformado deveria resultar em falso")
	}
	if Verify("qualquer", "") {
		t.Fatal("hash vazio deveria resultar em falso")
	}
}
