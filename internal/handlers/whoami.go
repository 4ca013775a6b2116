package handlers

import "context"

// WhoAmI reports the caller's address, preferred language and user agent.
func WhoAmI(ctx context.Context, req *WhoAmIRequest) (*WhoAmIResponse, error) {
	resp := &WhoAmIResponse{}
	resp.Body.IPAddress = RequestMetaFromContext(ctx).ClientIP
	resp.Body.Language = req.AcceptLanguage
	resp.Body.Software = req.UserAgent

	return resp, nil
}

// Hello is the greeting endpoint.
func Hello(_ context.Context, _ *struct{}) (*GreetingResponse, error) {
	resp := &GreetingResponse{}
	resp.Body.Greeting = "hello API"

	return resp, nil
}
