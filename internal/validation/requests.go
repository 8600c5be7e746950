package validation

// RegisterRequest is the payload for POST /users/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=superadmin admin user"`
}

// LoginRequest is the payload for POST /users/login. Any non-empty password
// is accepted here; the length rule applies to registration only.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=30"`
	Password string `json:"password" validate:"required"`
}

// PatchUserRequest is the payload for PATCH /users/:id. All fields optional;
// absent fields leave the stored value untouched.
type PatchUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=30"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=superadmin admin user"`
}

// CreateCategoryRequest is the payload for POST /categories.
type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=1,max=50"`
}

// PatchCategoryRequest is the payload for PATCH /categories/:id.
type PatchCategoryRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=50"`
}

// CreateEntryRequest is the payload for POST /entries and POST /suggestions.
// The suggestion field is honored only on /entries; /suggestions forces it
// to true regardless of the payload.
type CreateEntryRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"required,min=1,max=500"`
	Link        string  `json:"link" validate:"required"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Suggestion  *bool   `json:"suggestion,omitempty"`
}

// PatchEntryRequest is the payload for PATCH /entries/:id and
// PATCH /suggestions/:id.
type PatchEntryRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Link        *string `json:"link,omitempty" validate:"omitempty,min=1"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Suggestion  *bool   `json:"suggestion,omitempty"`
}
