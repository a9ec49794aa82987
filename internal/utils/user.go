package utils

import (
	"math/rand"
	"time"
)

// GetCreatorTier maps a creator's total received likes to a display tier
func GetCreatorTier(totalLikes int) (name string, icon string) {
	switch {
	case totalLikes >= 1000:
		return "Legend", "🏆"
	case totalLikes >= 201:
		return "Regular", "🔥"
	case totalLikes >= 51:
		return "Barista", "☕"
	case totalLikes >= 11:
		return "Brewing", "🫖"
	default:
		return "Newcomer", "🌱"
	}
}

// GetDaysSinceJoined returns whole days since the account was created
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}

// GetRandomEmoji returns a random emoji used as a default avatar
func GetRandomEmoji() string {
	emojis := []string{"🤖", "☕", "🦊", "🐼", "🐸", "🦉", "🐱", "🐶", "👾", "🛸", "✨", "🎭"}
	return emojis[rand.Intn(len(emojis))]
}

// GetCommonEmojis returns the avatar picker choices
func GetCommonEmojis() []string {
	return []string{
		"🤖", "👾", "🛸", "🎭", "🧙", "🦊", "🐼", "🐸",
		"🦉", "🐯", "🐱", "🐶", "☕", "🍵", "🫖", "🧋",
		"😀", "😃", "😄", "😁", "😊", "😎", "🤓", "🧐",
		"👨‍💻", "👩‍💻", "👨‍🎨", "👩‍🎨", "🧑‍🚀", "👨‍🔬", "👩‍🔬", "🧚",
		"⭐", "✨", "🔥", "💡", "🚀", "🎯", "💎", "🏆",
	}
}
