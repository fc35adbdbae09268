//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the xfail binary.
func Build() error {
	return sh.Run("go", "build", "-o", "bin/xfail", "./cmd/xfail")
}

// Test runs the test suite.
func Test() error {
	return sh.Run("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.Run("go", "vet", "./...")
}

// QA runs vet and then the tests.
func QA() error {
	mg.Deps(Vet)
	return Test()
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
