// Command hash-generator prints the bcrypt hash to configure as
// auth.client_secret_hash (INVENTORY_AUTH_CLIENT_SECRET_HASH) for a client secret.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/inventory-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost n] <client-secret>")
		os.Exit(2)
	}

	hash, err := auth.HashSecret(flag.Arg(0), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
