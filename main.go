package main

import "github.com/flashfs/nffsrestore/cmd"

func main() {
	cmd.Execute()
}
