package handlers

import (
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
)

// profileOf builds a user's public profile with follower/following counts
func profileOf(u *models.User, followRepo repositories.FollowRepository) models.UserProfile {
	followers, _ := followRepo.GetFollowersCount(u.ID)
	following, _ := followRepo.GetFollowingCount(u.ID)
	return u.ToProfile(followers, following)
}

// postResponse builds a post's API representation: author profile plus
// whether the viewer has liked it
func postResponse(
	p *models.Post,
	viewerID uint,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
) models.PostResponse {
	resp := models.PostResponse{Post: *p}
	if author, err := userRepo.GetUserByID(p.UserID); err == nil {
		profile := profileOf(author, followRepo)
		resp.Author = &profile
	}
	liked, _ := likeRepo.HasUserLikedPost(p.ID, viewerID)
	resp.LikedByUser = liked
	return resp
}

// noteResponse builds a note's API representation with its author profile
func noteResponse(
	n *models.Note,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
) models.NoteResponse {
	resp := n.ToResponse()
	if author, err := userRepo.GetUserByID(n.UserID); err == nil {
		profile := profileOf(author, followRepo)
		resp.Author = &profile
	}
	return resp
}

// commentResponse builds a comment's API representation with its author profile
func commentResponse(
	cm *models.Comment,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
) models.CommentResponse {
	resp := models.CommentResponse{Comment: *cm}
	if author, err := userRepo.GetUserByID(cm.UserID); err == nil {
		profile := profileOf(author, followRepo)
		resp.Author = &profile
	}
	return resp
}
