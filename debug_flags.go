// Copyright 2012 Google Inc. All Rights Reserved.
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

package nin

import (
	"fmt"
	"os"
)

// gExplaining turns on verbose diagnostics for DCache peer connections and
// probes. Off by default; it is unexported and nothing in this module sets
// it.
var gExplaining = false

func EXPLAIN(f string, i ...interface{}) {
	if gExplaining {
		fmt.Fprintf(os.Stderr, "nin explain: "+f+"\n", i...)
	}
}
