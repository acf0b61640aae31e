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

import "encoding/binary"

// murmurSeed and murmurM are part of the on-disk contract: the hash they
// produce is persisted as hex in the build log, so they must never change.
const (
	murmurSeed uint64 = 0xDECAFBADDECAFBAD
	murmurM    uint64 = 0xC6A4A7935BD1E995
	murmurR           = 47
)

// murmurHash64A is the 64 bit MurmurHash2-A variant, by Austin Appleby.
func murmurHash64A(key []byte) uint64 {
	h := murmurSeed ^ (uint64(len(key)) * murmurM)
	for len(key) >= 8 {
		k := binary.LittleEndian.Uint64(key)
		k *= murmurM
		k ^= k >> murmurR
		k *= murmurM
		h ^= k
		h *= murmurM
		key = key[8:]
	}
	switch len(key) {
	case 7:
		h ^= uint64(key[6]) << 48
		fallthrough
	case 6:
		h ^= uint64(key[5]) << 40
		fallthrough
	case 5:
		h ^= uint64(key[4]) << 32
		fallthrough
	case 4:
		h ^= uint64(key[3]) << 24
		fallthrough
	case 3:
		h ^= uint64(key[2]) << 16
		fallthrough
	case 2:
		h ^= uint64(key[1]) << 8
		fallthrough
	case 1:
		h ^= uint64(key[0])
		h *= murmurM
	}
	h ^= h >> murmurR
	h *= murmurM
	h ^= h >> murmurR
	return h
}

// HashCommand returns the 64 bit MurmurHash2-A of command, used as the
// command_hash field of a LogEntry. The same command always hashes to the
// same value, on any machine, since the seed and constants are fixed.
func HashCommand(command string) uint64 {
	return murmurHash64A([]byte(command))
}
