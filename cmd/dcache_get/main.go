// Copyright 2020 Google Inc. All Rights Reserved.
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

// Command dcache_get is a debugging tool: given a JSON host list and a
// relative path, it probes every peer in order the same way a build driver
// would and prints whoever answered first.
package main

import (
	"fmt"
	"os"

	"github.com/nin-build/dcache"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dcache_get: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var hostsFile string

	cmd := &cobra.Command{
		Use:   "dcache_get <relative-path>",
		Short: "Fetch a file from the first peer in a host list that has it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hostsFile == "" {
				return fmt.Errorf("--hosts is required")
			}
			data, err := os.ReadFile(hostsFile)
			if err != nil {
				return err
			}
			infos, err := nin.ParseHostList(data)
			if err != nil {
				return err
			}

			c := nin.NewDCache()
			c.Init(infos)
			defer c.Close()

			contents := c.GetFileContents(args[0])
			if contents == nil {
				fmt.Fprintf(os.Stderr, "dcache_get: miss, no peer has %q\n", args[0])
				os.Exit(1)
			}
			os.Stdout.Write(contents)
			return nil
		},
	}

	cmd.Flags().StringVar(&hostsFile, "hosts", "", `path to a JSON host list, e.g. [{"host":"build1","port":9987}]`)
	return cmd
}
