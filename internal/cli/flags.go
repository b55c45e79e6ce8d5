package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	OutputDir    string
	Dialect      string
	BatchFile    string
	Show         bool
	PhoneticOnly bool
	FallbackRaw  bool
	ListVoices   bool
	Archive      bool
	ClearCache   bool
	APIKey       string

	// Synthesis flags
	Provider          string
	Format            string
	Language          string
	Voice             string
	Rate              float64
	Pitch             float64
	RequestsPerSecond float64

	// OpenAI flags
	OpenAIModel       string
	OpenAIVoice       string
	OpenAIInstruction string

	// Vowelizer flags
	Vowelizer     string
	Genre         string
	Completeness  string
	GeminiModel   string
	DictaEndpoint string
	Cache         bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Dialect:           "lithuanian",
		Provider:          "google",
		Format:            "mp3",
		Language:          "he-IL",
		Voice:             "he-IL-Standard-A",
		Rate:              1.0,
		Pitch:             -1.5,
		RequestsPerSecond: 2,
		OpenAIModel:       "gpt-4o-mini-tts",
		OpenAIVoice:       "onyx",
		Vowelizer:         "dicta",
		Genre:             "rabbinic",
		Completeness:      "full",
		GeminiModel:       "gemini-2.0-flash",
	}
}
