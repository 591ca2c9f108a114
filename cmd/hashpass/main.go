package main

import (
	"fmt"
	"os"

	"github.com/cursinhoinsper/plataforma/internal/auth"
)

// Gera um hash Argon2id para cadastrar identidades manualmente via mongo.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpass <senha>")
		os.Exit(1)
	}

	hash, err := auth.Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
