package models

import "testing"

func TestPrivilegeCapabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p          Privilege
		viewAll    bool
		approve    bool
		users      bool
		siteConfig bool
	}{
		{PrivilegeWebmaster, true, true, true, true},
		{PrivilegeModerator, true, true, false, false},
		{PrivilegeWriter, false, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.p.CanViewAllPosts(); got != tt.viewAll {
			t.Errorf("%v.CanViewAllPosts() = %v, want %v", tt.p, got, tt.viewAll)
		}
		if got := tt.p.CanApprovePosts(); got != tt.approve {
			t.Errorf("%v.CanApprovePosts() = %v, want %v", tt.p, got, tt.approve)
		}
		if got := tt.p.CanManageUsers(); got != tt.users {
			t.Errorf("%v.CanManageUsers() = %v, want %v", tt.p, got, tt.users)
		}
		if got := tt.p.CanManageSiteConfig(); got != tt.siteConfig {
			t.Errorf("%v.CanManageSiteConfig() = %v, want %v", tt.p, got, tt.siteConfig)
		}
	}
}

func TestPrivilegeValid(t *testing.T) {
	t.Parallel()

	for _, p := range []Privilege{PrivilegeWebmaster, PrivilegeModerator, PrivilegeWriter} {
		if !p.Valid() {
			t.Errorf("%v.Valid() = false, want true", p)
		}
	}
	for _, p := range []Privilege{0, -1, 4, 99} {
		if p.Valid() {
			t.Errorf("Privilege(%d).Valid() = true, want false", int(p))
		}
	}
}
