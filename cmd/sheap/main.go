// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(Main())
}

// Main runs the sheap command line and returns the code for passing to
// os.Exit. Subcommands that detect "no match" or a contract violation exit
// the process directly; Main's own return value only covers cobra-level
// errors such as a bad flag or a missing fixture argument.
func Main() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// MainTest is Main run under testscript.RunMain, where the binary is
// re-exec'd as the "sheap" subprocess for each script's exec lines.
func MainTest() int {
	return Main()
}
