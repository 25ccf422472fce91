package main

import "github.com/alexiusacademia/gotmd/cmd"

func main() {
	cmd.Execute()
}
