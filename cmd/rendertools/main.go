package main

import "github.com/isaacphi/rendertools/internal/ui/cli"

func main() {
	cli.Execute()
}
