package main

import "github.com/Rakhulsr/wishcrate/app/cmd"

func main() {
	cmd.RunCli()
}
