package main

import "github.com/frahmantamala/loanlink/cmd"

func main() {
	cmd.Execute()
}
