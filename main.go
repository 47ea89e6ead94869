package main

import (
	"github.com/purpose168/evo-widgets-cn/internal/cmd"
)

func main() {
	cmd.Execute()
}
