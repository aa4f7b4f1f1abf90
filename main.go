package main

import "github.com/KaramelBytes/crimedash/cmd"

func main() {
	cmd.Execute()
}
