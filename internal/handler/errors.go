// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "fmt"

// componentPanic is returned when a route component panics.
type componentPanic struct {
	value any
}

func (e *componentPanic) Error() string {
	return fmt.Sprintf("component panic: %v", e.value)
}
