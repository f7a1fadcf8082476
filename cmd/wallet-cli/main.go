package main

import "wallet-keystone/cmd/wallet-cli/cmd"

func main() {
	cmd.Execute()
}
