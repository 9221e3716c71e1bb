// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	gflags "github.com/nikclayton/gflags-derive"
)

type Config struct {
	Name string `gflags:"default = 'default name', placeholder = 'NAME'" desc:"your name"`
	Age  int    `gflags:"default = 18" desc:"your age"`
}

// `go run cmd.go -h`
// output:
// Flags:
//	--age int       your age (default 18)
//	-h, --help      help for this command
//	--name string   your name (default "default name")
//
// `go run cmd.go --age 133`
// output: main.Config{Name:"default name", Age:133}
//

func main() {
	var cfg Config
	rootCmd := &cobra.Command{
		Run: func(cmd *cobra.Command, args []string) {
			if err := gflags.ReadFlags(&cfg); err != nil {
				panic(err)
			}
			fmt.Printf("%#v\n", cfg)
		},
	}
	if err := gflags.BindAndExecute(rootCmd, &cfg); err != nil {
		panic(err)
	}
}
