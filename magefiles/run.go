//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders one frame of the testbed world and dumps its command streams.
func (Run) Testbed() error {
	fmt.Println("Run testbed...")
	if _, err := executeCmd("go", withArgs("run", ".", "-frames", "1", "-dump"), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders the demo frame description and rebuilds it on every save.
func (Run) Demo() error {
	mg.Deps(Build.Vet)
	fmt.Println("Run demo frame...")
	if _, err := executeCmd("go", withArgs("run", ".", "-frame", "testbed/demo.toml", "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}
