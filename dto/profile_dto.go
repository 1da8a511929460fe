package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusnet/models"
)

// UserRef is the short form a user appears in inside another user's
// following/followers lists.
type UserRef struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
}

// ProfileResponse is the full profile view: the user document without
// the credential hash, with the relationship lists resolved to refs.
type ProfileResponse struct {
	ID                   primitive.ObjectID `json:"id"`
	FirstName            string             `json:"firstName"`
	LastName             string             `json:"lastName"`
	Email                string             `json:"email"`
	Username             string             `json:"username"`
	Age                  int                `json:"age"`
	College              string             `json:"college"`
	YearLevel            string             `json:"yearLevel"`
	Bio                  *string            `json:"bio,omitempty"`
	ProfileImage         *string            `json:"profileImage,omitempty"`
	CustomInterests      []string           `json:"customInterests"`
	CategorizedInterests []string           `json:"categorizedInterests"`
	Role                 string             `json:"role"`
	Following            []UserRef          `json:"following"`
	Followers            []UserRef          `json:"followers"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// NewProfileResponse builds the profile view from a user document and
// its resolved relationship lists.
func NewProfileResponse(user *models.User, following, followers []UserRef) *ProfileResponse {
	if following == nil {
		following = []UserRef{}
	}
	if followers == nil {
		followers = []UserRef{}
	}
	return &ProfileResponse{
		ID:                   user.ID,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Email:                user.Email,
		Username:             user.Username,
		Age:                  user.Age,
		College:              user.College,
		YearLevel:            user.YearLevel,
		Bio:                  user.Bio,
		ProfileImage:         user.ProfileImage,
		CustomInterests:      user.CustomInterests,
		CategorizedInterests: user.CategorizedInterests,
		Role:                 user.Role,
		Following:            following,
		Followers:            followers,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}
