package config

// FeatureFlags holds development and rollout toggles, read once at startup.
type FeatureFlags struct {
	// NotifyEveryTime forces the earned-notification gate to fire on every
	// check instead of once per (user, seal). Development override for
	// testing the earned overlay; rejected in production by Validate.
	NotifyEveryTime bool

	// LeaderboardCache enables the Redis-backed standings cache. With the
	// flag off (or Redis disabled) every leaderboard read recomputes from
	// PostgreSQL.
	LeaderboardCache bool
}

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	return &FeatureFlags{
		NotifyEveryTime:  getEnvBool("FEATURE_NOTIFY_EVERY_TIME", false),
		LeaderboardCache: getEnvBool("FEATURE_LEADERBOARD_CACHE", true),
	}
}
