package main

import "github.com/KaramelBytes/catbin/cmd"

func main() {
	cmd.Execute()
}
