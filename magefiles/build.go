//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the engine and the testbed binary.
func (Build) Engine() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/anima-gfx", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Vets every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
