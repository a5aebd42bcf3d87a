// open decrypts container files offline with the server key.
//
//	open [-key-env NAME] [-out DIR] container.enc...
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"evault/internal/container"
	"evault/internal/keys"
	"evault/internal/pkg/filename"
)

func main() {
	keyEnv := flag.String("key-env", keys.DefaultEnv, "environment variable holding the key")
	outDir := flag.String("out", ".", "directory to write decrypted files to")
	inspect := flag.Bool("inspect", false, "print the stored filename without decrypting")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Usage: open [-key-env NAME] [-out DIR] [-inspect] <container>...")
	}

	if *inspect {
		for _, path := range flag.Args() {
			blob, err := os.ReadFile(path)
			if err != nil {
				log.Fatalf("Failed to read %s: %v", path, err)
			}
			h, err := container.Inspect(blob)
			if err != nil {
				log.Fatalf("%s: %v", path, err)
			}
			fmt.Printf("%s\t%q\n", path, h.Filename)
		}
		return
	}

	_ = godotenv.Load()
	key, err := keys.FromEnv(*keyEnv)
	if err != nil {
		log.Fatalf("Failed to load key: %v", err)
	}
	codec, err := container.New(key)
	if err != nil {
		log.Fatalf("Failed to create codec: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	failures := 0
	for _, path := range flag.Args() {
		blob, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read %s: %v", path, err)
			failures++
			continue
		}

		plaintext, name, err := codec.Decode(blob)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failures++
			continue
		}

		// The stored name is not authenticated; never trust it as a path.
		safe := filename.Secure(name)
		if safe == "" {
			safe = filepath.Base(path) + ".out"
		}
		dst := filepath.Join(*outDir, safe)
		if err := os.WriteFile(dst, plaintext, 0o600); err != nil {
			log.Printf("Failed to write %s: %v", dst, err)
			failures++
			continue
		}
		fmt.Printf("%s -> %s (%d bytes)\n", path, dst, len(plaintext))
	}

	if failures > 0 {
		os.Exit(1)
	}
}
