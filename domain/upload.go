package domain

type UploadedImage struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// EmailMessage is one outgoing transactional email.
type EmailMessage struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}
