// keygen prints a fresh container key in the form FILE_ENCRYPTION_KEY expects.
package main

import (
	"flag"
	"fmt"
	"log"

	"evault/internal/keys"
)

func main() {
	envLine := flag.Bool("env", false, "print as a .env assignment")
	flag.Parse()

	key, err := keys.Generate()
	if err != nil {
		log.Fatalf("Failed to generate key: %v", err)
	}

	if *envLine {
		fmt.Printf("%s=%s\n", keys.DefaultEnv, key.Hex())
		return
	}
	fmt.Println(key.Hex())
}
