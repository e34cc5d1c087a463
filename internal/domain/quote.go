package domain

const (
	DefaultAvatar  = "/default-avatar.png"
	PlaceholderBio = "No biographical information available."
	RetryMessage   = "Unable to load the quote. Please try again."
	LoadingMessage = "Loading..."
	PortraitWidth  = 200
)

type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

type AuthorInfo struct {
	ImageURL string `json:"imageUrl"`
	Bio      string `json:"bio"`
}

func FallbackAuthorInfo() AuthorInfo {
	return AuthorInfo{ImageURL: DefaultAvatar, Bio: PlaceholderBio}
}

type AuthorRecord struct {
	Title    string
	ImageURL string
	Extract  string
}

type UIState struct {
	CurrentQuote   string `json:"currentQuote"`
	CurrentAuthor  string `json:"currentAuthor"`
	CurrentImage   string `json:"currentImage"`
	CurrentBio     string `json:"currentBio"`
	ShowAuthorInfo bool   `json:"showAuthorInfo"`
}

func ErrorState() UIState {
	return UIState{
		CurrentQuote: RetryMessage,
		CurrentImage: DefaultAvatar,
		CurrentBio:   PlaceholderBio,
	}
}
