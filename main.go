// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/scanrunner/scanrunner/cmd/scanrunner"
)

func main() {
	// A .env in the working directory may carry SCANRUNNER_* overrides.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to load .env", "error", err)
	}
	cmd.Execute()
}
