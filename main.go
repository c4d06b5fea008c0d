/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package main

import (
	"os"

	"github.com/ranaumarnadeem/riscv-docker-toolchain/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
