package main

import "github.com/emacsmirror/chatgpt-shell/cmd"

func main() {
	cmd.Execute()
}
