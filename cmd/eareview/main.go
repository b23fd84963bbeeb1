package main

import "github.com/mohan-con17/ea-review-fe/internal/cli"

func main() {
	cli.Execute()
}
