//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed on the Vulkan backend.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "anima.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed on the null backend, no GPU or display needed.
func (Run) Headless() error {
	fmt.Println("Run engine headless...")
	if err := os.Setenv("ANIMA_GFX_BACKEND", "null"); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "anima.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
