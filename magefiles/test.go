//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-count=1", "./..."), withStream())
	return err
}

// Runs the tests that need neither cgo nor a display.
func (Test) Headless() error {
	_, err := executeCmd("go", withArgs("test", "-count=1",
		"./engine/core/...",
		"./engine/containers/...",
		"./engine/math/...",
		"./engine/renderer/device/...",
		"./engine/renderer/graphics/...",
		"./engine/renderer/uniform/...",
		"./engine/assets/...",
	), withStream())
	return err
}
