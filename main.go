package main

import "github.com/aximo-works/boardwatch/cmd"

func main() {
	cmd.Execute()
}
