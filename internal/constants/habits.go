package constants

const (
	DefaultEmoji    = "🎯"
	DefaultCategory = "Health & Fitness"
)

// Categories offered when creating a habit. Stored categories are free-form.
var Categories = []string{
	"Health & Fitness",
	"Learning",
	"Productivity",
	"Mindfulness",
	"Creative",
	"Social",
	"Personal Care",
	"Other",
}

// EmojiOptions offered when creating a habit.
var EmojiOptions = []string{
	"💪", "📚", "🏃", "💧", "🧘", "🎯", "✍️", "🎨", "🎵", "🌱",
	"🏋️", "🥗", "💻", "🛏️", "☀️", "🚶", "📱", "🧹", "💼", "❤️",
}
