// Copyright 2020 ConsenSys Software Inc.
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

// Package cq implements the cq lookup argument (Eagen, Fiore, Gabizon,
// https://eprint.iacr.org/2022/1763) over BN254: a succinct,
// non-interactive proof that every element of a short witness vector f
// appears in a long, fixed public table t, with verifier work independent
// of the table size beyond one-time table digests.
//
// A table is preprocessed once into a PreprocessedTable; any number of
// witnesses can then be proven and verified against it. The prover
// combines only the |support(f)| cached table commitments its witness
// hits, but multiplies B(X) by F(X)+beta with schoolbook O(n²)
// arithmetic, so its witness-side work is quadratic in n rather than
// n·log(n). The verifier performs four pairing checks.
package cq
