package util

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

// ValidateEmail retorna erro para e-mails inválidos.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("email inválido")
	}
	return nil
}

// ValidatePassword verifica requisitos mínimos de senha.
func ValidatePassword(senha string) error {
	if len(senha) < 8 {
		return errors.New("senha deve ter pelo menos 8 caracteres")
	}
	return nil
}

// ValidateCPF exige exatamente 11 dígitos numéricos (sem pontuação).
func ValidateCPF(cpf string) error {
	if len(cpf) != 11 {
		return errors.New("cpf deve ter 11 dígitos")
	}
	for _, r := range cpf {
		if !unicode.IsDigit(r) {
			return errors.New("cpf deve conter apenas dígitos")
		}
	}
	return nil
}

// RequireString garante string não vazia.
func RequireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " obrigatório")
	}
	return nil
}

// Capitalize normaliza nomes com inicial maiúscula.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}
