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

// Command dcached runs the distributed-cache peer daemon: it serves the
// contents of any file under its configured root to whoever connects and
// asks for it by relative path.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nin-build/dcache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dcached: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile, root, addr string
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "dcached",
		Short: "Serve files under a directory to distributed-cache peers",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			v.BindPFlag("root", cmd.Flags().Lookup("root"))
			v.BindPFlag("addr", cmd.Flags().Lookup("addr"))

			cfg, err := nin.LoadDaemonConfig(v, cfgFile)
			if err != nil {
				return err
			}

			absRoot, err := filepath.Abs(cfg.Root)
			if err != nil {
				return err
			}

			writeTimeout, err := cfg.WriteTimeoutDuration()
			if err != nil {
				return err
			}

			d := nin.NewDaemon(absRoot)
			d.WriteTimeout = writeTimeout
			if !noWatch {
				if err := d.WatchRoot(); err != nil {
					log.Printf("dcached: root watch disabled: %s", err)
				}
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sig
				log.Print("dcached: shutting down")
				d.Stop()
			}()

			fmt.Printf("dcached: serving %s on %s\n", absRoot, cfg.Addr)
			return d.Run(cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file (default: none, use flags/defaults)")
	cmd.Flags().StringVar(&root, "root", ".", "directory to serve files from")
	cmd.Flags().StringVar(&addr, "addr", ":9987", "address to listen on")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable the fsnotify root watcher")

	return cmd
}
