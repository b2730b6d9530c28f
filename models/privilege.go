package models

// Privilege is the stored numeric privilege level. The numbers are inverted
// relative to authority: Webmaster(1) outranks Moderator(2) outranks
// Writer(3). Existing documents depend on these values, so they must not
// change; call sites compare through the capability methods below and never
// against the raw numbers.
type Privilege int

const (
	PrivilegeWebmaster Privilege = 1
	PrivilegeModerator Privilege = 2
	PrivilegeWriter    Privilege = 3
)

// Valid reports whether p is one of the three known levels.
func (p Privilege) Valid() bool {
	switch p {
	case PrivilegeWebmaster, PrivilegeModerator, PrivilegeWriter:
		return true
	}
	return false
}

// IsWebmaster reports whether p is the webmaster level.
func (p Privilege) IsWebmaster() bool { return p == PrivilegeWebmaster }

// CanViewAllPosts reports whether p may see every post regardless of author.
// Writers only see their own.
func (p Privilege) CanViewAllPosts() bool {
	return p == PrivilegeWebmaster || p == PrivilegeModerator
}

// CanApprovePosts reports whether p may toggle a post's public visibility.
func (p Privilege) CanApprovePosts() bool {
	return p == PrivilegeWebmaster || p == PrivilegeModerator
}

// CanModerateComments reports whether p may delete reader comments.
func (p Privilege) CanModerateComments() bool {
	return p == PrivilegeWebmaster || p == PrivilegeModerator
}

// CanManageUsers reports whether p may create, edit and delete accounts.
func (p Privilege) CanManageUsers() bool { return p == PrivilegeWebmaster }

// CanManageSiteConfig reports whether p may edit global site settings.
func (p Privilege) CanManageSiteConfig() bool { return p == PrivilegeWebmaster }

func (p Privilege) String() string {
	switch p {
	case PrivilegeWebmaster:
		return "webmaster"
	case PrivilegeModerator:
		return "moderator"
	case PrivilegeWriter:
		return "writer"
	}
	return "unknown"
}
