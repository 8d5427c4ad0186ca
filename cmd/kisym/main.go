package main

import "github.com/OpenTraceLab/kisym/cmd/kisym/cmd"

func main() {
	cmd.Execute()
}
