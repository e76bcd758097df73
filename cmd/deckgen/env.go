package main

import (
	"io"
	"os"
	"time"

	deckgen "github.com/alnah/go-deckgen"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// Images overrides the image source built from configuration.
	Images deckgen.ImageSource
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
