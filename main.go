package main

import (
	"os"

	"github.com/c14220110/poliklinik-admin/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
