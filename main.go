package main

import "github.com/robalobadob/crossword/cmd"

func main() {
	cmd.Execute()
}
