package main

import "github.com/Alturino/pharmacy/cmd"

func main() {
	cmd.Start()
}
