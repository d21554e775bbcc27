// Copyright (c) 2025 Simple Tools Pro.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models contains request/response types and domain rows for the
eResources API.

# Row Shapes

Resources have two renderings: the student-facing Resource (upper-case type,
tags exploded into a list) and the raw AdminResource used by the admin
console. Users likewise have a full User row (dashboard) and a reduced
UserSummary (admin listings).

# Tags

Tags arrive from clients either as a JSON array or as one comma-delimited
string. TagList is the union of both forms; TagList.Normalize converges them
on a trimmed, non-empty, order-preserving list and SplitTags reverses the
stored comma-joined form.
*/
package models
