package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "homey: %v\n", err)
		os.Exit(1)
	}
}
