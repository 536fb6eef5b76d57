package validation

// Error is a client input problem. Code is a stable snake_case identifier;
// Message is safe to show to users.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrEmailRequired      = &Error{Code: "email_required", Message: "Email is required"}
	ErrEmailTooLong       = &Error{Code: "invalid_email", Message: "Email address is too long (max 254 characters)"}
	ErrInvalidEmail       = &Error{Code: "invalid_email", Message: "Invalid email address format"}
	ErrPasswordRequired   = &Error{Code: "password_required", Message: "Password is required"}
	ErrWeakPassword       = &Error{Code: "weak_password", Message: "Password must be at least 6 characters long"}
	ErrPasswordTooLong    = &Error{Code: "password_too_long", Message: "Password must not exceed 72 characters"}
	ErrDisplayNameTooLong = &Error{Code: "display_name_too_long", Message: "Display name is too long (max 100 characters)"}
	ErrInvalidMediaURL    = &Error{Code: "invalid_url", Message: "URL must be an absolute http or https URL"}
	ErrTitleRequired      = &Error{Code: "title_required", Message: "Title is required"}
	ErrDescriptionMissing = &Error{Code: "description_required", Message: "Description is required"}
	ErrVideoURLRequired   = &Error{Code: "video_url_required", Message: "Video URL is required"}
	ErrThumbnailRequired  = &Error{Code: "thumbnail_url_required", Message: "Thumbnail URL is required"}
	ErrInvalidQuality     = &Error{Code: "invalid_quality", Message: "Quality must be between 1 and 100"}
	ErrInvalidDimensions  = &Error{Code: "invalid_dimensions", Message: "Width and height must be positive"}
	ErrFileRequired       = &Error{Code: "file_required", Message: "No file provided"}
	ErrUnsupportedMedia   = &Error{Code: "unsupported_media_type", Message: "Only image and video files are allowed"}
	ErrImageTooLarge      = &Error{Code: "file_too_large", Message: "File size too large. Maximum 5MB allowed."}
	ErrVideoTooLarge      = &Error{Code: "file_too_large", Message: "File size too large. Maximum 100MB allowed."}
)
