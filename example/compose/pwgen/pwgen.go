// Copyright © 2024 Nik Clayton.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.
//

// Package pwgen is a toy password generator whose configuration
// exposes command-line flags under the pw- prefix.
package pwgen

import "math/rand"

type Config struct {
	// --pw-charset
	Charset string `json:"charset" gflags:"default = 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', placeholder = 'CHARS'" desc:"String to use for password characters"`

	// --pw-length
	Length uint32 `json:"length" gflags:"default = 10" desc:"Desired password length"`
}

// Default returns the configuration used when neither the config file
// nor the command line says otherwise.
func Default() Config {
	return Config{
		Charset: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		Length:  10,
	}
}

// Generate produces a terrible password.
func (c Config) Generate() string {
	chars := []rune(c.Charset)
	if len(chars) == 0 {
		chars = []rune(Default().Charset)
	}
	out := make([]rune, c.Length)
	for i := range out {
		out[i] = chars[rand.Intn(len(chars))]
	}
	return string(out)
}
