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

package nin

// TimeStamp is a file modification time, in the platform's native epoch.
// It mirrors the resolution RealDiskInterface.Stat would return; BuildLog
// never interprets the value beyond storing and comparing it.
type TimeStamp int64

// DiskInterface is the minimal disk contract BuildLog.Restat needs to
// re-examine an output's mtime after a command finishes. The full
// disk-abstraction layer (reading, writing, directory creation) lives with
// the build driver; BuildLog only ever stats.
type DiskInterface interface {
	// Stat returns the mtime of path, 0 if the file does not exist, or an
	// error if the stat itself failed.
	Stat(path string) (TimeStamp, error)
}

// BuildLogUser lets the build driver tell Recompact which outputs are no
// longer part of the build graph, so their log entries can be dropped.
type BuildLogUser interface {
	IsPathDead(path string) bool
}
