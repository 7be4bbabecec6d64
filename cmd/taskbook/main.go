package main

import "github.com/eugenecsa/taskbook/cmd/taskbook/root"

func main() {
	root.Execute()
}
