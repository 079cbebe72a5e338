// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

// Package team manages developer and project manager profiles and the
// assignments between them.
//
// Profiles and assignments are rows keyed by ULID; views are stitched from
// those ids on demand rather than held as an object graph. An assignment is
// never deleted: unassigning deactivates the row and assigning again
// reactivates it.
package team
