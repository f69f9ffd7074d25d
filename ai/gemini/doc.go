// Copyright 2025 Poiesic Systems
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

// Package gemini implements the ai interfaces against a Gemini-style
// generative language API.
//
// File staging uses the service's resumable upload protocol directly over
// net/http: the two-phase session (start command, then a single
// upload+finalize transfer at offset zero) is part of the service contract
// and is modeled explicitly by FileClient. Text generation goes through the
// service's OpenAI-compatible endpoint via langchaingo.
package gemini
