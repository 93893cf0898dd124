package domain

import "time"

// AuthSession is the locally stored authentication session. Its presence is
// the authoritative "logged in" signal; cached profile data is display-only.
type AuthSession struct {
	Token     string
	UserName  string
	CreatedAt time.Time
}

// TrialUsage tracks free grading attempts for an anonymous identity.
// Persists across workflow resets; authentication bypasses the budget
// without resetting it.
type TrialUsage struct {
	AnonymousID  string
	AttemptsUsed int
	MaxAttempts  int
}

// Remaining returns how many free attempts are left.
func (u TrialUsage) Remaining() int {
	if u.AttemptsUsed >= u.MaxAttempts {
		return 0
	}
	return u.MaxAttempts - u.AttemptsUsed
}
