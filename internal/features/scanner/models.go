package scanner

type JobCard struct {
	JobID    string `json:"jobId,omitempty"`
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	URL      string `json:"url,omitempty"`
}

type ScanResult struct {
	PageURL         string     `json:"pageUrl"`
	JobCards        []*JobCard `json:"jobCards"`
	CaptchaDetected bool       `json:"captchaDetected"`
	CaptchaSignals  []string   `json:"captchaSignals,omitempty"`
}

type ScanPageRequestDTO struct {
	URL  string `json:"url"  binding:"required"`
	HTML string `json:"html" binding:"required"`
}
