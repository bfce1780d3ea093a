//go:build mage
// +build mage

package main

import (
	"github.com/magefile/mage/sh"
)

var Default = Build

// Builds the vumeterd binary into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/vumeterd", "./cmd/vumeterd")
}

// Runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Removes build output.
func Clean() error {
	return sh.Rm("bin")
}
