package common

import "fmt"

func RedisKeyRateLimit(userID, path string) string {
	return fmt.Sprintf("ratelimit:%s:%s", userID, path)
}

func RedisKeyChannelOnline(campaignID, channel string) string {
	return fmt.Sprintf("channelonline:%s:%s", campaignID, channel)
}
