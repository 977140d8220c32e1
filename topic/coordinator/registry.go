package coordinator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// ErrMemberExpired means the registry forgot the member, it must register again.
var ErrMemberExpired = errors.New("partlog: group member expired")

// Registry keeps live members of consumer groups.
type Registry interface {
	// Register adds the member to the group, registering a live member again is allowed.
	Register(ctx context.Context, group, memberID string) error

	// Heartbeat prolongs membership, it fails with ErrMemberExpired if the member is not registered.
	Heartbeat(ctx context.Context, group, memberID string) error

	// Members returns sorted ids of live members.
	Members(ctx context.Context, group string) ([]string, error)

	Leave(ctx context.Context, group, memberID string) error
}

// NewMemberID returns a unique member id which shows the host it runs on.
func NewMemberID(prefix string) string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	if prefix == "" {
		return fmt.Sprintf("%s-%s", hostname, uuid.New().String())
	}

	return fmt.Sprintf("%s-%s-%s", prefix, hostname, uuid.New().String())
}
