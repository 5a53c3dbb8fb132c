package main

import "github.com/notargets/gocolloc/cmd"

func main() {
	cmd.Execute()
}
