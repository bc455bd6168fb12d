//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binary  = "autotranslate"
	mainPkg = "./cmd/autotranslate"
	version = "codeberg.org/snonux/autotranslate/internal.Version"
)

// Default target to run when none is specified
var Default = Build

func ldflags() string {
	v := os.Getenv("VERSION")
	if v == "" {
		return ""
	}
	return fmt.Sprintf("-X %s=%s", version, v)
}

// Build compiles the autotranslate binary
func Build() error {
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Install installs autotranslate into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
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

// Generate regenerates the gomock mocks
func Generate() error {
	return sh.RunV("go", "generate", "./internal/provider/...")
}

// Check runs vet and tests
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm(binary)
}
