package main

import "github.com/smallyu/pubcrypt/cmd/pubcrypt/cmd"

func main() {
	cmd.Execute()
}
