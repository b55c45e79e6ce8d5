//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "havara"

// Default target to run when none is specified
var Default = Build

// Build compiles the havara binary
func Build() error {
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/havara")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs havara into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/havara")
}

// Clean removes build artifacts
func Clean() error {
	matches, err := filepath.Glob(binary + "*")
	if err != nil {
		return err
	}
	for _, m := range matches {
		if filepath.Ext(m) == ".go" {
			continue
		}
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}
