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

// Package render is the production host.Host: a terminal-rendered window
// surface built the way the teacher builds its own terminal Screen —
// a dirty cell buffer flushed in batches, a fitted ANSI palette standing
// in for 24-bit color, and a raw-mode input reader decoding key and
// mouse sequences into the events the VM asks WaitInput for.
//
// Oriel's drawing model is pixel-addressed; render maps each pixel
// coordinate onto a terminal cell one-for-one. That is a deliberate
// simplification of the Windows GDI canvas this language was designed
// against, not an attempt to emulate pixel graphics in a character grid.
package render
