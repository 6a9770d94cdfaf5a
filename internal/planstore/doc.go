// Copyright 2025 Tom Barlow
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

// Package planstore persists and retrieves documents inside a sandbox root.
//
// A Store resolves every path through a Sandbox before touching its
// Repository, so a path that escapes the root fails with an access-denied
// error and no I/O. Reads degrade to a placeholder document on I/O failure;
// writes propagate every error.
package planstore
