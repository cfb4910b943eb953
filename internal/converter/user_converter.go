package converter

import (
	"healthsystem/internal/delivery/dto"
	"healthsystem/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The profile is
// attached separately because it comes from the referenced domain row.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		UserType:    user.Role.String(),
		ReferenceID: user.ReferenceID,
		LastLogin:   user.LastLogin,
	}
}
