// Package main provides the slab CLI.
package main

import (
	"fmt"
	"os"

	"github.com/slab-ml/slab/resource/host"
	"github.com/slab-ml/slab/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("slab %s\n", version)
			return
		case "demo":
			if err := demo(); err != nil {
				fmt.Fprintf(os.Stderr, "demo: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	fmt.Println("slab - minimal strided tensor layer for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Run a small shape-algebra walkthrough")
}

func demo() error {
	ctx := tensor.NewContext(host.New())

	x, err := ctx.Identity(3)
	if err != nil {
		return err
	}
	fmt.Println("identity:", x)

	flat, err := x.Reshape(tensor.Shape{tensor.Wild})
	if err != nil {
		return err
	}
	fmt.Println("flattened view:", flat)

	left, err := x.Slice(0, 2, 1)
	if err != nil {
		return err
	}
	right, err := x.Slice(2, 3, 1)
	if err != nil {
		return err
	}
	whole, err := tensor.Concat(left, right, 1)
	if err != nil {
		return err
	}
	fmt.Println("slice + concat round trip:", whole)

	// Incompatible requests fail with recoverable errors.
	if _, err := x.Reshape(tensor.Shape{2, 4}); err != nil {
		fmt.Println("expected failure:", err)
	}
	return nil
}
