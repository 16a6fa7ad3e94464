package main

import "github.com/notargets/surfmesh/cmd"

func main() {
	cmd.Execute()
}
