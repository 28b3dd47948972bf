package hcm

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/randalmurphal/stategraph/pkg/stategraph"
)

// Directory is the HCM system the agents act against.
// Implementations should honor ctx cancellation.
type Directory interface {
	// AssignRole grants the named role to the user.
	AssignRole(ctx context.Context, username, role string) error

	// ResetPassword replaces the user's password.
	ResetPassword(ctx context.Context, username, password string) error

	// Unlock clears the user's account lock.
	Unlock(ctx context.Context, username string) error
}

// SimulatedDirectory is a Directory that only logs the calls it would
// make. It stands in for the real HCM API in demos and tests.
type SimulatedDirectory struct {
	Logger *slog.Logger
}

var _ Directory = (*SimulatedDirectory)(nil)

func (d *SimulatedDirectory) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// AssignRole implements Directory.
func (d *SimulatedDirectory) AssignRole(_ context.Context, username, role string) error {
	d.logger().Info("simulated HCM call",
		"method", "POST",
		"path", "/api/users/"+username+"/roles",
		"role", role)
	return nil
}

// ResetPassword implements Directory.
func (d *SimulatedDirectory) ResetPassword(_ context.Context, username, _ string) error {
	d.logger().Info("simulated HCM call",
		"method", "PATCH",
		"path", "/api/users/"+username,
		"field", "password")
	return nil
}

// Unlock implements Directory.
func (d *SimulatedDirectory) Unlock(_ context.Context, username string) error {
	d.logger().Info("simulated HCM call",
		"method", "PATCH",
		"path", "/api/users/"+username,
		"field", "locked")
	return nil
}

// PasswordLength is the length of generated passwords.
const PasswordLength = 12

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewPassword generates a random password of n letters and digits.
func NewPassword(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = passwordAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

// RoleAgent returns the node that assigns a role to a user.
func RoleAgent(dir Directory) stategraph.NodeFunc[State] {
	return func(ctx stategraph.Context, s State) (State, error) {
		if s.Username == "" {
			return s, fmt.Errorf("role assignment requires a username")
		}
		if s.ExtraInfo == "" {
			return s, fmt.Errorf("role assignment requires a role name")
		}

		if err := dir.AssignRole(ctx, s.Username, s.ExtraInfo); err != nil {
			return s, fmt.Errorf("assign role %q to %s: %w", s.ExtraInfo, s.Username, err)
		}

		s = s.Remember(MemLastRole, s.ExtraInfo)
		s.Result = fmt.Sprintf("Successfully assigned role %q to %s", s.ExtraInfo, s.Username)
		s.NextStep = StepEnd
		return s, nil
	}
}

// PasswordAgent returns the node that resets a user's password.
// The generated password appears only in the Result message, never in
// session memory.
func PasswordAgent(dir Directory) stategraph.NodeFunc[State] {
	return func(ctx stategraph.Context, s State) (State, error) {
		if s.Username == "" {
			return s, fmt.Errorf("password reset requires a username")
		}

		password, err := NewPassword(PasswordLength)
		if err != nil {
			return s, err
		}

		if err := dir.ResetPassword(ctx, s.Username, password); err != nil {
			return s, fmt.Errorf("reset password for %s: %w", s.Username, err)
		}

		s.Result = fmt.Sprintf("Password reset for %s. New password: %s", s.Username, password)
		s.NextStep = StepEnd
		return s, nil
	}
}

// UnlockAgent returns the node that unlocks a user account.
func UnlockAgent(dir Directory) stategraph.NodeFunc[State] {
	return func(ctx stategraph.Context, s State) (State, error) {
		if s.Username == "" {
			return s, fmt.Errorf("unlock requires a username")
		}

		if err := dir.Unlock(ctx, s.Username); err != nil {
			return s, fmt.Errorf("unlock %s: %w", s.Username, err)
		}

		s.Result = fmt.Sprintf("Successfully unlocked user %s", s.Username)
		s.NextStep = StepEnd
		return s, nil
	}
}
