package main

import "github.com/ianlopshire/go-fixedrecord/cmd/fixer/cmd"

func main() {
	cmd.Execute()
}
