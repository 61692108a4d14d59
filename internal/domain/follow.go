package domain

import "context"

// FollowRepository is the port for follow relationships. Add and Remove
// report whether a change actually occurred, so callers can distinguish
// "now following" from "was already following".
type FollowRepository interface {
	Add(ctx context.Context, follower, followee string) (bool, error)
	Remove(ctx context.Context, follower, followee string) (bool, error)
	List(ctx context.Context, follower string) ([]string, error)
	Contains(ctx context.Context, follower, followee string) (bool, error)
	DeleteByFollower(ctx context.Context, follower string) (int, error)
}
