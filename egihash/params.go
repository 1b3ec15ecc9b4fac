// Copyright 2018 The aquachain Authors
// This file is part of the aquachain library.
//
// The aquachain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The aquachain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the aquachain library. If not, see <http://www.gnu.org/licenses/>.

// Package egihash implements the egihash proof-of-work hashing engine: epoch
// sizing, cache and DAG construction, and the hashimoto mixing function.
package egihash

const (
	wordBytes          = 4        // bytes in an internal word
	hashBytes          = 64       // bytes in a cache/DAG element
	hashWords          = hashBytes / wordBytes
	mixBytes           = 128      // bytes in the hashimoto mix buffer
	datasetParents     = 256      // cache reads per DAG element
	cacheRounds        = 3        // RandMemoHash passes
	loopAccesses       = 64       // DAG reads per hashimoto evaluation
	epochLength        = 30000    // blocks per epoch
	cacheInitBytes     = 1 << 24  // cache bytes at epoch 0, pre-trim
	cacheGrowthBytes   = 1 << 17  // cache bytes added per epoch
	datasetInitBytes   = 1 << 30  // DAG bytes at epoch 0, pre-trim
	datasetGrowthBytes = 1 << 23  // DAG bytes added per epoch
	fnvPrime           = 0x01000193
)

// genesisSeed is the seed for epoch 0: 32 zero bytes.
var genesisSeed = make([]byte, 32)

// fnv is the 32-bit FNV-like combiner used throughout the engine:
// ((a*FNV_PRIME) XOR b) mod 2^32, with unsigned 32-bit wraparound.
func fnv(a, b uint32) uint32 {
	return (a * fnvPrime) ^ b
}

// Epoch returns the epoch number for the given block number.
func Epoch(block uint64) uint64 {
	return block / epochLength
}

// EpochFirstBlock returns the first block number belonging to the given epoch.
func EpochFirstBlock(epoch uint64) uint64 {
	return epoch * epochLength
}
