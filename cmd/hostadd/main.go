// Package main implements the hostadd CLI, a small embedder around the "env"
// module: it can call the native add function directly through the runtime,
// or load a guest binary which imports it.
package main

import "os"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
