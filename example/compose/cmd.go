// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

// An application assembled from two libraries, each contributing its
// own flags. Configuration is loaded from a JSON file, then any flag
// present on the command line overrides the loaded value:
//
//	go run cmd.go --config-file config.json --pw-length 20 --log-to-stderr
//
// config.json:
//
//	{
//	    "log":   {"to_stderr": false, "dir": "/var/log/compose"},
//	    "pwgen": {"charset": "abcdefghijklmnopqrstuvwxyz", "length": 12}
//	}
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	gflags "github.com/nikclayton/gflags-derive"
	"github.com/nikclayton/gflags-derive/example/compose/logcfg"
	"github.com/nikclayton/gflags-derive/example/compose/pwgen"
)

type appConfig struct {
	// --config-file
	ConfigFile string `gflags:"placeholder = 'FILE'" desc:"Path to configuration file to load"`
}

type fileConfig struct {
	Log   logcfg.Config `json:"log"`
	Pwgen pwgen.Config  `json:"pwgen"`
}

func main() {
	var app appConfig
	cfg := fileConfig{Pwgen: pwgen.Default()}

	rootCmd := &cobra.Command{
		Use: "compose",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()

			if err := gflags.MergeFlags(fs, &app); err != nil {
				return err
			}
			if app.ConfigFile != "" {
				raw, err := os.ReadFile(app.ConfigFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &cfg); err != nil {
					return err
				}
			}

			// The command line wins over the config file.
			if err := gflags.MergeFlags(fs, &cfg.Log); err != nil {
				return err
			}
			if err := gflags.MergeFlags(fs, &cfg.Pwgen); err != nil {
				return err
			}

			cfg.Log.Init()
			fmt.Printf("Suggested password: %s\n", cfg.Pwgen.Generate())
			return nil
		},
	}

	fs := rootCmd.Flags()
	for _, v := range []any{&app, &logcfg.Config{}, &pwgen.Config{}} {
		if err := gflags.DefineFlags(fs, v); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
