package main

import "zscript/cmd"

func main() {
	cmd.Execute()
}
