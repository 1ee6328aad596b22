package commerce

import "strings"

// AuthorizationHeader is the parsed form of the project's bespoke
// "Bearer <accessToken> <refreshToken>" header. This is not the standard
// two-part bearer scheme; both tokens travel in one header and either slot
// may be empty. Existing clients depend on this layout bit-for-bit, so any
// redesign (two headers, structured body) has to happen behind this type.
type AuthorizationHeader struct {
	Scheme       string
	AccessToken  string
	RefreshToken string
}

// Present reports whether the header existed on the request at all.
func (h AuthorizationHeader) Present() bool {
	return h.Scheme != "" || h.AccessToken != "" || h.RefreshToken != ""
}

// Complete reports whether both token slots are populated.
func (h AuthorizationHeader) Complete() bool {
	return h.AccessToken != "" && h.RefreshToken != ""
}

// ParseAuthorizationHeader splits raw on single spaces into scheme, access
// and refresh slots. Splitting is positional: "Bearer  <token>" (two spaces)
// leaves the access slot empty and puts the token in the refresh slot, which
// is how clients present a refresh token on its own. An empty header yields a
// zero value; surplus tokens beyond the third are ignored.
func ParseAuthorizationHeader(raw string) AuthorizationHeader {
	var parts []string
	if raw != "" {
		parts = strings.Split(raw, " ")
	}

	var header AuthorizationHeader
	if len(parts) > 0 {
		header.Scheme = parts[0]
	}
	if len(parts) > 1 {
		header.AccessToken = parts[1]
	}
	if len(parts) > 2 {
		header.RefreshToken = parts[2]
	}
	return header
}
