package main

import "github.com/justinmayhew/msh/cmd"

func main() {
	cmd.Execute()
}
