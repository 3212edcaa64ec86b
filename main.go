package main

import "github.com/chemstack/chemconsole/cmd"

func main() {
	cmd.Execute()
}
