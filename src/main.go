package main

import (
	"github.com/nvmux/nvmux/src/cmd"

	// Import backend variants to register them
	_ "github.com/nvmux/nvmux/src/backends/fnm"
	_ "github.com/nvmux/nvmux/src/backends/nvm"
)

func main() {
	cmd.Execute()
}
