package authsdk

import "time"

// Purpose values accepted by the OTP endpoints.
const (
	PurposeSignup = "signup"
	PurposeSignin = "signin"
)

// ============================================================================
// OTP Types
// ============================================================================

// IssueOTPRequest is the body of POST /v1/auth/issue-otp.
type IssueOTPRequest struct {
	// Email the code is mailed to
	Email string `json:"email"`

	// Name is used in the greeting and, on signup, becomes the display name
	Name string `json:"name,omitempty"`

	// Purpose is "signup" or "signin" (default)
	Purpose string `json:"purpose,omitempty"`
}

// IssueOTPResponse echoes the address the code was sent to.
type IssueOTPResponse struct {
	Email string `json:"email"`
}

// VerifyOTPRequest is the body of POST /v1/auth/verify-otp.
type VerifyOTPRequest struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Name    string `json:"name,omitempty"`
	Purpose string `json:"purpose,omitempty"`
}

// Subject is the public view of an identity.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VerifyOTPResponse carries the freshly minted session token.
type VerifyOTPResponse struct {
	Subject      Subject   `json:"subject"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// CheckUserRequest is the body of POST /v1/auth/check-user.
type CheckUserRequest struct {
	Email string `json:"email"`
}

// CheckUserResponse reports whether an identity exists for an email.
type CheckUserResponse struct {
	Exists bool          `json:"exists"`
	User   *UserResponse `json:"user,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// UserResponse is the full view of the caller's identity.
type UserResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	AvatarRef       string     `json:"avatar_ref,omitempty"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// RenameRequest is the body of PATCH /v1/me.
type RenameRequest struct {
	Name string `json:"name"`
}

// ============================================================================
// Note Types
// ============================================================================

// NoteRequest is the body for creating or replacing a note.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse is a single note.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotesResponse lists the caller's notes, newest first.
type NotesResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Store string `json:"store"`
}
