// Copyright 2025 the original author or authors.
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

// Package cli holds the pieces shared across the pbf command's
// subcommands: the root cobra.Command each subcommand registers itself
// with, and the input-file helpers (progress bar wrapping, cobra Value
// types) those subcommands use.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the pbf command every subcommand attaches itself to via its
// own init().
var RootCmd = &cobra.Command{
	Use:   "pbf",
	Short: "pbf reads, writes, and converts OpenStreetMap PBF and OPL files",
}

// Execute runs the configured command tree, exiting the process on error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
