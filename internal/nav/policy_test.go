// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forkfulapp/forkful-tui/internal/account"
)

func TestHomeFor(t *testing.T) {
	tests := []struct {
		role account.Role
		want Route
	}{
		{account.RoleAdmin, RouteAdminDashboard},
		{account.RoleUser, RouteDashboard},
		{account.RoleNone, RouteHome},
		{account.Role("superuser"), RouteHome}, // unrecognized collapses to public home
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, HomeFor(tc.role), "HomeFor(%q)", tc.role)
	}
}

func TestHomeForDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, RouteAdminDashboard, HomeFor(account.RoleAdmin))
	}
}
