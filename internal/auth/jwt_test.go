package auth

import (
	"testing"
	"time"
)

const testSecret = "um-segredo-de-teste-com-32-bytes!"

func TestGenerateAndParse(t *testing.T) {
	mgr := NewJWTManager(testSecret, time.Hour)

	token, expiraEm, err := mgr.GenerateAccessToken("abc123", "GESTAO")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("token vazio")
	}
	if until := time.Until(expiraEm); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiração fora do TTL configurado: %v", until)
	}

	claims, err := mgr.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "abc123" {
		t.Fatalf("subject = %q, esperado abc123", claims.Subject)
	}
	if claims.Permissao != "GESTAO" {
		t.Fatalf("permissao = %q, esperado GESTAO", claims.Permissao)
	}
}

func TestParseFailsClosed(t *testing.T) {
	mgr := NewJWTManager(testSecret, time.Hour)
	outro := NewJWTManager("outro-segredo-tambem-com-32-bytes", time.Hour)

	token, _, err := mgr.GenerateAccessToken("abc123", "ALUNO")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := outro.ParseAndValidate(token); err == nil {
		t.Fatal("assinatura de outro segredo deveria falhar")
	}

	if _, err := mgr.ParseAndValidate("não.é.jwt"); err == nil {
		t.Fatal("token malformado deveria falhar")
	}

	expirado := NewJWTManager(testSecret, -time.Minute)
	token, _, err = expirado.GenerateAccessToken("abc123", "ALUNO")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := mgr.ParseAndValidate(token); err == nil {
		t.Fatal("token expirado deveria falhar")
	}
}
