package services

// AuthenticationError is returned by AuthService.Authenticate.
type AuthenticationError struct {
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string { return e.Message }
func (e *AuthenticationError) Unwrap() error { return e.Err }

// RegistrationError is returned by AuthService.Register.
type RegistrationError struct {
	Message string
	Err     error
}

func (e *RegistrationError) Error() string { return e.Message }
func (e *RegistrationError) Unwrap() error { return e.Err }

// ProfileFetchError is returned when the current user or profile cannot be
// loaded.
type ProfileFetchError struct {
	Message string
	Err     error
}

func (e *ProfileFetchError) Error() string { return e.Message }
func (e *ProfileFetchError) Unwrap() error { return e.Err }

type ProfileUpdateError struct {
	Message string
	Err     error
}

func (e *ProfileUpdateError) Error() string { return e.Message }
func (e *ProfileUpdateError) Unwrap() error { return e.Err }

type LeaderboardFetchError struct {
	Message string
	Err     error
}

func (e *LeaderboardFetchError) Error() string { return e.Message }
func (e *LeaderboardFetchError) Unwrap() error { return e.Err }
