package main

import (
	"github.com/convexlab/go-cvxlean/pkg/cmd"
)

func main() {
	cmd.Execute()
}
