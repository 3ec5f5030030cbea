// Copyright 2015 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

// Program is the parser's output and the VM's (read-only) input: a flat,
// indexed instruction stream plus a label table. Every control transfer
// in the VM is a plain index into Commands, not a pointer graph, so a
// Program is trivially shareable.
type Program struct {
	// Commands is terminated by an End sentinel appended by the parser.
	Commands []Command
	// Labels maps a label name to the index of the command immediately
	// following its declaration.
	Labels map[Identifier]int
}

// NewProgram returns an empty Program ready for the parser to populate.
func NewProgram() *Program {
	return &Program{Labels: make(map[Identifier]int)}
}
