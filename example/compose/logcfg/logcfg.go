// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

// Package logcfg is a toy logging library whose configuration exposes
// command-line flags under the log- prefix.
package logcfg

import "fmt"

type Config struct {
	// --log-to-stderr
	ToStderr bool `json:"to_stderr" desc:"True if log messages should also be sent to STDERR"`

	// --log-to-stderr-level
	ToStderrLevel string `json:"to_stderr_level" gflags:"default = 'info', placeholder = 'LEVEL'" desc:"If logging to STDERR, what level to log at"`

	// --log-dir
	Dir string `json:"dir" gflags:"placeholder = 'DIR'" desc:"The directory to write log files to"`
}

func (Config) FlagAnnotations() []string {
	return []string{`prefix = "log-"`}
}

// Init pretends to start the logging subsystem.
func (c *Config) Init() {
	if c.ToStderr {
		fmt.Printf("logcfg: logging to stderr at level %s\n", c.ToStderrLevel)
	}
	if c.Dir != "" {
		fmt.Printf("logcfg: writing log files to %s\n", c.Dir)
	}
}
