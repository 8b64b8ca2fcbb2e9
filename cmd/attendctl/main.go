package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"attendku_backend/internals/configs"
)

const appVersion = "0.3.0"

func main() {
	configs.LoadEnv()
	if err := execute(context.Background(), os.Stdout, time.Now, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
