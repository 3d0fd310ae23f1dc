package main

import "resep/cmd"

func main() {
	cmd.Execute()
}
