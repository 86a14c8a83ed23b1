// ABOUTME: Entry point for the zorel CLI
// ABOUTME: Command-line storefront and admin tool for the Zorel Leather API

package main

import (
	"fmt"
	"os"

	"github.com/lazybrownass/zorel-leather/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
