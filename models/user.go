package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnusablePasswordHash replaces the real password hash while an
// admin-initiated reset is pending. It is not a bcrypt digest, so bcrypt
// verification against it can never succeed even if the isPasswordReset
// check is somehow bypassed.
const UnusablePasswordHash = "*login-disabled*"

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username          string             `bson:"username" json:"username"`
	Name              string             `bson:"name" json:"name"`
	PasswordHash      string             `bson:"password" json:"-"`
	Privilege         Privilege          `bson:"privilege" json:"privilege"`
	IsPasswordReset   bool               `bson:"isPasswordReset" json:"isPasswordReset"`
	AdminTempPassword string             `bson:"adminTempPassword,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	ModifiedAt        time.Time          `bson:"modifiedAt" json:"modifiedAt"`
}

// BeginPasswordReset puts the account into the temp-credential state:
// adminTempPassword holds the hashed temporary credential, login is disabled
// and the real hash is replaced by the unusable marker.
func (u *User) BeginPasswordReset(tempPasswordHash string) {
	u.AdminTempPassword = tempPasswordHash
	u.IsPasswordReset = true
	u.PasswordHash = UnusablePasswordHash
}

// CompletePasswordReset installs the new hash and clears the reset state.
func (u *User) CompletePasswordReset(newPasswordHash string) {
	u.PasswordHash = newPasswordHash
	u.IsPasswordReset = false
	u.AdminTempPassword = ""
}

// ResetPending reports whether the account is in a consistent
// temp-credential state: flag set, temp hash present and the stored password
// equal to the unusable marker. All three must hold before a self-service
// reset is allowed.
func (u *User) ResetPending() bool {
	return u.IsPasswordReset && u.AdminTempPassword != "" && u.PasswordHash == UnusablePasswordHash
}
