package main

import "github.com/mselser95/betslip-validator/cmd"

func main() {
	cmd.Execute()
}
