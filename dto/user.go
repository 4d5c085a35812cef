package dto

import "travelcms/models"

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=2,max=120"`
	Role     string `json:"role" binding:"required,oneof=admin editor"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// NewModel carries the plain password; the model hashes it on save.
func (r CreateUserRequest) NewModel() models.User {
	u := models.User{
		Email:    r.Email,
		FullName: r.FullName,
		Role:     r.Role,
		Password: r.Password,
	}
	u.IsActive = activeOrDefault(r.IsActive)
	return u
}

type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" binding:"omitempty,min=2,max=120"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin editor"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r UpdateUserRequest) ApplyTo(u *models.User) {
	setString(&u.Email, r.Email)
	setString(&u.FullName, r.FullName)
	setString(&u.Role, r.Role)
	setString(&u.Password, r.Password)
	setBool(&u.IsActive, r.IsActive)
}
