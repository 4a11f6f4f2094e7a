package main

import "github.com/skimtext/skim/cmd"

func main() {
	cmd.Execute()
}
