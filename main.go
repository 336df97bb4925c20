package main

import "github.com/quocvuong92/gitterm/cmd"

func main() {
	cmd.Execute()
}
