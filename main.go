package main

import (
	"github.com/lixenwraith/g/cmd"
)

func main() {
	cmd.Execute()
}
