// Copyright 2011 Google Inc. All Rights Reserved.
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

//go:build !windows

package nin

import (
	"os"
	"syscall"
)

// setCloseOnExec marks the log file descriptor to not be inherited by
// subprocesses the build driver spawns. Go's os.OpenFile already sets
// O_CLOEXEC on platforms that support it atomically at open time; this is
// a best-effort belt-and-suspenders call for the rest.
func setCloseOnExec(f *os.File) {
	syscall.CloseOnExec(int(f.Fd()))
}
