package entity

import "time"

type Role string

const (
	RoleEntrepreneur Role = "entrepreneur"
	RoleInvestor     Role = "investor"
	RoleStartup      Role = "startup"
	RoleOrganization Role = "organization"
	RoleUniversity   Role = "university"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEntrepreneur, RoleInvestor, RoleStartup, RoleOrganization, RoleUniversity, RoleAdmin:
		return true
	}
	return false
}

// User is the account document. Password and the verification code never
// serialize to JSON; DeletedAt marks a soft-deleted account that every read
// path filters out.
type User struct {
	Id                  string     `bson:"_id" json:"id"`
	Username            string     `bson:"username" json:"username"`
	Email               string     `bson:"email" json:"email"`
	Password            string     `bson:"password" json:"-"`
	Name                string     `bson:"name" json:"name"`
	Role                Role       `bson:"role" json:"role"`
	Bio                 string     `bson:"bio,omitempty" json:"bio,omitempty"`
	Company             string     `bson:"company,omitempty" json:"company,omitempty"`
	Location            string     `bson:"location,omitempty" json:"location,omitempty"`
	AvatarURL           string     `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Friends             []string   `bson:"friends" json:"friends"`
	Verified            bool       `bson:"verified" json:"verified"`
	VerifyCode          string     `bson:"verifyCode,omitempty" json:"-"`
	VerifyCodeExpiresAt *time.Time `bson:"verifyCodeExpiresAt,omitempty" json:"-"`
	Online              bool       `bson:"online" json:"online"`
	DeletedAt           *time.Time `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt           time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsFriend reports whether the given user id is in the friend list.
func (u *User) IsFriend(userId string) bool {
	for _, id := range u.Friends {
		if id == userId {
			return true
		}
	}
	return false
}
