// Command assetctl manages the asset registry from the shell: register
// imports, artifact regeneration and settings.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		os.Exit(1)
	}
}
