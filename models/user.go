package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in the users collection.
//
// Bio and ProfileImage are pointers so an unset field is distinguishable
// from one explicitly set to the empty string.
type User struct {
	ID                   primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FirstName            string               `json:"firstName" bson:"firstName"`
	LastName             string               `json:"lastName" bson:"lastName"`
	Email                string               `json:"email" bson:"email"`
	Password             string               `json:"-" bson:"password"`
	Username             string               `json:"username" bson:"username"`
	Age                  int                  `json:"age" bson:"age"`
	College              string               `json:"college" bson:"college"`
	YearLevel            string               `json:"yearLevel" bson:"yearLevel"`
	Bio                  *string              `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImage         *string              `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	CustomInterests      []string             `json:"customInterests" bson:"customInterests"`
	CategorizedInterests []string             `json:"categorizedInterests" bson:"categorizedInterests"`
	Role                 string               `json:"role" bson:"role"`
	Following            []primitive.ObjectID `json:"following" bson:"following"`
	Followers            []primitive.ObjectID `json:"followers" bson:"followers"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// DisplayName is the name shown to other users, e.g. in notifications.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// IsFollowing reports whether id is present in the user's following list.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// HasFollower reports whether id is present in the user's followers list.
func (u *User) HasFollower(id primitive.ObjectID) bool {
	for _, f := range u.Followers {
		if f == id {
			return true
		}
	}
	return false
}
