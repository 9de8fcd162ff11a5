package model

// Tour as served by /api/tours and /api/tours/admin.
//
// The canonical schema references Category and Difficulty by foreign key.
// Legacy records may still carry free-text Category/Difficulty names; the
// form layer resolves those back to IDs on load.
type Tour struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Price            float64  `json:"price"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"` // YYYY-MM-DD
	EndDate          string   `json:"endDate"`   // YYYY-MM-DD
	AvailableSeats   int      `json:"availableSeats"`
	CategoryID       *int     `json:"categoryId,omitempty"`
	DifficultyID     *int     `json:"difficultyId,omitempty"`
	Category         string   `json:"category,omitempty"`   // legacy free-text
	Difficulty       string   `json:"difficulty,omitempty"` // legacy free-text
	IsActive         bool     `json:"isActive"`
	Images           []string `json:"images,omitempty"`
	IncludedServices []string `json:"includedServices,omitempty"`
	ExcludedServices []string `json:"excludedServices,omitempty"`
	Itinerary        []string `json:"itinerary,omitempty"`
}

// Category as served by /api/categories. CategoryURL doubles as the slug in
// /api/categories/url/{categoryUrl} and as the display image when ImageURL
// is unset.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CategoryURL string `json:"categoryUrl"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Difficulty as served by /api/difficulties.
type Difficulty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UploadedFile is the response of POST /api/upload/file.
type UploadedFile struct {
	OriginalName string `json:"originalname"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
}
