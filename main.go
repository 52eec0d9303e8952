package main

import "github.com/naka-gawa/github-licenses/cmd"

func main() {
	cmd.Execute()
}
