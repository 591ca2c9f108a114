package repo

import "errors"

var (
	// ErrNotFound é retornado quando nenhum registro é encontrado.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrDuplicado é retornado quando um índice único rejeita a escrita
	// (email ou CPF já cadastrado).
	ErrDuplicado = errors.New("registro duplicado")
)
