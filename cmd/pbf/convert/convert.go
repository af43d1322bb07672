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

// Package convert implements the "convert" subcommand, which round-trips
// entities between the pbf and opl formats via the codecs registered in
// internal/registry.
package convert

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"m4o.io/pbf/v2"
	"m4o.io/pbf/v2/cmd/pbf/cli"
)

func init() {
	cli.RootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringP("from", "f", "", "input format tag (pbf, opl); inferred from the input file's extension if omitted")
	flags.StringP("to", "t", "", "output format tag (pbf, opl); inferred from the output file's extension if omitted")
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert between OSM PBF and OPL files",
	Long:  "Convert between OSM PBF and OPL files",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		from, err := flags.GetString("from")
		if err != nil {
			log.Fatal(err)
		}

		to, err := flags.GetString("to")
		if err != nil {
			log.Fatal(err)
		}

		if from == "" {
			from = tagFromExt(args[0])
		}

		if to == "" {
			to = tagFromExt(args[1])
		}

		if err := run(args[0], args[1], from, to); err != nil {
			log.Fatal(err)
		}
	},
}

func tagFromExt(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pbf":
		return "pbf"
	case ".opl":
		return "opl"
	default:
		return ""
	}
}

func run(inPath, outPath, from, to string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}

	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	defer out.Close()

	src, err := pbf.Open(from)
	if err != nil {
		return err
	}

	dst, err := pbf.Open(to)
	if err != nil {
		return err
	}

	entities, err := src.DecodeAll(in)
	if err != nil {
		return err
	}

	return dst.EncodeAll(out, entities)
}
