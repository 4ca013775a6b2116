package handlers

// ShortenRequest carries the raw submission. The url field may arrive as
// JSON, as an urlencoded form or as multipart form data.
type ShortenRequest struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

// ShortenResponse is the response for a shortened URL.
type ShortenResponse struct {
	Location string `doc:"The absolute short URL" header:"Location"`
	Body     struct {
		OriginalURL string `doc:"The normalized original URL" example:"https://example.com/very/long/path" json:"original_url"`
		ShortURL    string `doc:"The short code"              example:"V1StGXR8_Z5jdHi6B-myT"            json:"short_url"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"V1StGXR8_Z5jdHi6B-myT" path:"code"`
}

// RedirectResponse sends the client to the original URL.
type RedirectResponse struct {
	Status   int
	Location string `header:"Location"`
}

// GreetingResponse is the response of the hello endpoint.
type GreetingResponse struct {
	Body struct {
		Greeting string `example:"hello API" json:"greeting"`
	}
}

// DateRequest is a date string or a Unix timestamp in milliseconds.
type DateRequest struct {
	Date string `doc:"Date string or Unix milliseconds" example:"2015-12-25" path:"date"`
}

// TimestampResponse holds either a timestamp pair or the invalid date error.
type TimestampResponse struct {
	Body struct {
		Unix  *int64 `json:"unix,omitempty"  example:"1451001600000"`
		UTC   string `json:"utc,omitempty"   example:"Fri, 25 Dec 2015 00:00:00 GMT"`
		Error string `json:"error,omitempty" example:"Invalid Date"`
	}
}

// WhoAmIRequest selects the headers the whoami endpoint reports.
type WhoAmIRequest struct {
	AcceptLanguage string `header:"Accept-Language"`
	UserAgent      string `header:"User-Agent"`
}

// WhoAmIResponse describes the calling client.
type WhoAmIResponse struct {
	Body struct {
		IPAddress string `json:"ipaddress" example:"159.20.14.100"`
		Language  string `json:"language"  example:"en-US,en;q=0.5"`
		Software  string `json:"software"  example:"Mozilla/5.0 (X11; Linux x86_64)"`
	}
}
